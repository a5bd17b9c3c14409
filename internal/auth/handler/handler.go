// Package handler exposes the authentication use cases over HTTP and
// maps core errors onto the boundary's JSON contract.
package handler

import (
	"errors"
	"net/http"

	"identity-service/internal/account"
	"identity-service/internal/auth"
	"identity-service/internal/auth/provider"
	"identity-service/internal/auth/resolver"
	"identity-service/internal/statestore"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth      *auth.Service
	providers *provider.Registry
	states    statestore.Store
}

func NewHandler(
	authService *auth.Service,
	registry *provider.Registry,
	states statestore.Store,
) *Handler {
	return &Handler{
		auth:      authService,
		providers: registry,
		states:    states,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/google", h.GoogleToken)

	r.GET("/oauth/login/:provider", h.oauthLogin)
	r.GET("/oauth/callback/:provider", h.oauthCallback)
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// respondAuth renders a successful authentication result.
func respondAuth(c *gin.Context, status int, message string, res *auth.Result) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"user": userPayload{
			ID:    res.Account.ID,
			Name:  res.Account.Name,
			Email: res.Account.Email,
		},
		"token": res.Token,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondAuthError maps core errors onto client responses. Validation
// failures surface their single first-failure message; everything
// unexpected collapses to a generic internal error so no storage or
// crypto detail leaks.
func respondAuthError(c *gin.Context, err error) {
	var validation *account.ValidationError
	switch {
	case errors.As(err, &validation):
		respondError(c, http.StatusBadRequest, validation.Message)
	case errors.Is(err, auth.ErrEmailTaken):
		respondError(c, http.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(c, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, auth.ErrFederatedOnlyAccount):
		respondError(c, http.StatusBadRequest, "Please sign in with Google")
	case errors.Is(err, auth.ErrExternalTokenInvalid):
		respondError(c, http.StatusBadRequest, "Invalid Google token")
	case errors.Is(err, resolver.ErrIncompleteIdentity):
		respondError(c, http.StatusBadRequest, "Unable to get user information from Google")
	case errors.Is(err, resolver.ErrIdentityConflict):
		respondError(c, http.StatusConflict, "This identity is already linked to another account")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
