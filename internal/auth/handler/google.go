package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type googleTokenRequest struct {
	Token string `json:"token"`
}

// GoogleToken handles the direct federated-login path: the client
// obtained a Google ID token itself and posts it for verification.
func (h *Handler) GoogleToken(c *gin.Context) {
	var req googleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		respondError(c, http.StatusBadRequest, "Google token is required")
		return
	}

	res, err := h.auth.FederatedLogin(c.Request.Context(), "google", req.Token)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respondAuth(c, http.StatusOK, "Google authentication successful", res)
}
