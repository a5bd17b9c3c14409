package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"identity-service/internal/statestore"

	"github.com/gin-gonic/gin"
)

// oauthLogin starts the redirect-based authorization-code flow. The
// state parameter and its PKCE verifier are stored server-side as a
// one-time entry before the client is sent to the provider.
func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		respondError(c, http.StatusBadRequest, "unknown oauth provider")
		return
	}

	state := randomToken()
	verifier, challenge := generatePKCE()

	if err := h.states.Save(c.Request.Context(), state, verifier, stateTTL); err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, challenge))
}

// oauthCallback finishes the code flow: redeem the state, exchange the
// code, then run the same federated resolution as the direct path.
func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		respondError(c, http.StatusBadRequest, "unknown oauth provider")
		return
	}

	state := c.Query("state")
	if state == "" {
		respondError(c, http.StatusUnauthorized, "invalid state")
		return
	}

	verifier, err := h.states.Consume(c.Request.Context(), state)
	if err != nil {
		if errors.Is(err, statestore.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "invalid state")
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		slog.Warn("oauth callback returned error",
			slog.String("provider", providerName),
			slog.String("error", errParam),
			slog.String("desc", c.Query("error_description")),
		)
		respondError(c, http.StatusUnauthorized, "authentication failed")
		return
	}

	code := c.Query("code")
	if code == "" {
		respondError(c, http.StatusBadRequest, "missing authorization code")
		return
	}

	ident, err := p.ExchangeCode(c.Request.Context(), code, verifier)
	if err != nil {
		slog.Error("oauth code exchange failed",
			slog.String("provider", providerName),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusUnauthorized, "authentication failed")
		return
	}

	res, err := h.auth.CompleteFederated(c.Request.Context(), ident)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respondAuth(c, http.StatusOK, "Google authentication successful", res)
}
