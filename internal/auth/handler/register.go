package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	res, err := h.auth.Register(
		c.Request.Context(),
		req.Name,
		req.Email,
		req.Password,
	)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	slog.Info("register succeeded", slog.String("account_id", res.Account.ID))

	respondAuth(c, http.StatusCreated, "User registered successfully", res)
}
