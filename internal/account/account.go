package account

import (
	"strings"
	"time"
)

// Account is a persisted identity record. An account is created either
// locally (password credential) or through a federated provider
// (federated ID); it may hold both after linking, never neither.
type Account struct {
	ID           string
	Name         string
	Email        string // stored lower-cased, unique
	PasswordHash string // empty for federated-only accounts
	FederatedID  string // empty for local-only accounts
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can authenticate locally.
func (a *Account) HasPassword() bool {
	return a.PasswordHash != ""
}

// NormalizeEmail lower-cases and trims an email for storage and lookup.
// Email uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
