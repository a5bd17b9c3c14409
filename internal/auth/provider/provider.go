package provider

import "context"

// Identity represents a normalized external authentication identity
// returned by an OAuth provider. It contains facts only, no decisions.
type Identity struct {
	Provider string // e.g. "google"
	Subject  string // provider-scoped unique user identifier (sub)
	Email    string // email asserted by the provider
	Name     string // display name asserted by the provider
}

// OAuthProvider defines the contract every external auth provider must
// implement. Implementations return identity facts only and must not
// perform account creation, linking, or token issuance.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL for the redirect
	// flow. State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code for provider
	// credentials and returns the verified identity.
	ExchangeCode(ctx context.Context, code string, codeVerifier string) (*Identity, error)

	// VerifyIDToken verifies a provider-issued ID token presented
	// directly by a client and returns the identity it asserts.
	VerifyIDToken(ctx context.Context, rawIDToken string) (*Identity, error)
}
