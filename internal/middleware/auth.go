package middleware

import (
	"context"
	"net/http"
	"strings"
)

// unexported, collision-proof context key
type accountIDContextKeyType struct{}

var accountIDKey = accountIDContextKeyType{}

// AccountIDFromContext extracts the authenticated account ID from context.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey).(string)
	return id, ok
}

// TokenVerifier proves a bearer token and returns its subject account ID.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

type AuthMiddleware struct {
	Tokens TokenVerifier
}

func NewAuthMiddleware(tokens TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer session token and
// attaches the subject account ID to the request context. Malformed,
// forged and expired tokens are indistinguishable to the client.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		accountID, err := a.Tokens.Verify(raw)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), accountIDKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
