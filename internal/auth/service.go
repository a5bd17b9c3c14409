// Package auth composes credential policy, password hashing, identity
// resolution and token issuance into the register, login and
// federated-login use cases. Each call is terminal; no state persists
// across requests outside the account store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"identity-service/internal/account"
	"identity-service/internal/auth/credentials"
	"identity-service/internal/auth/provider"
	"identity-service/internal/auth/resolver"
	"identity-service/internal/auth/token"
)

// Result is the uniform outcome of a successful authentication: the
// resolved account and a freshly issued session token.
type Result struct {
	Account *account.Account
	Token   string
	Created bool
}

type Service struct {
	store     account.Store
	tokens    *token.Service
	resolver  resolver.Resolver
	providers *provider.Registry
}

func NewService(
	store account.Store,
	tokens *token.Service,
	res resolver.Resolver,
	providers *provider.Registry,
) *Service {
	return &Service{
		store:     store,
		tokens:    tokens,
		resolver:  res,
		providers: providers,
	}
}

// Register creates a local account with a password credential and
// returns it with a session token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Result, error) {
	if err := account.ValidateRegistration(name, email, password); err != nil {
		return nil, err
	}

	email = account.NormalizeEmail(email)

	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, account.ErrNotFound) {
		return nil, fmt.Errorf("auth: email lookup failed: %w", err)
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth: password hashing failed: %w", err)
	}

	created, err := s.store.Insert(ctx, &account.Account{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		// A concurrent registration with the same email may win between
		// the lookup and the insert; storage reports it as a conflict.
		if errors.Is(err, account.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("auth: account insert failed: %w", err)
	}

	tok, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: token issue failed: %w", err)
	}

	slog.Info("account registered", slog.String("account_id", created.ID))

	return &Result{Account: created, Token: tok, Created: true}, nil
}

// Login authenticates a local account by email and password.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	if err := account.ValidateLogin(email, password); err != nil {
		return nil, err
	}

	acc, err := s.store.FindByEmail(ctx, account.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: email lookup failed: %w", err)
	}

	if !acc.HasPassword() {
		return nil, ErrFederatedOnlyAccount
	}

	if err := credentials.VerifyPassword(acc.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(acc.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: token issue failed: %w", err)
	}

	slog.Info("account logged in", slog.String("account_id", acc.ID))

	return &Result{Account: acc, Token: tok}, nil
}

// FederatedLogin verifies a provider-issued ID token, resolves the
// identity to an account and issues a session token.
func (s *Service) FederatedLogin(ctx context.Context, providerName, rawIDToken string) (*Result, error) {
	p, err := s.providers.Get(providerName)
	if err != nil {
		return nil, err
	}

	ident, err := p.VerifyIDToken(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalTokenInvalid, err)
	}

	return s.CompleteFederated(ctx, ident)
}

// CompleteFederated runs identity resolution and token issuance for an
// already-verified external identity. The redirect callback flow calls
// it directly after its code exchange.
func (s *Service) CompleteFederated(ctx context.Context, ident *provider.Identity) (*Result, error) {
	acc, created, err := s.resolver.Resolve(ctx, ident)
	if err != nil {
		return nil, err
	}

	tok, err := s.tokens.Issue(acc.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: token issue failed: %w", err)
	}

	slog.Info("federated login resolved",
		slog.String("account_id", acc.ID),
		slog.String("provider", ident.Provider),
		slog.Bool("created", created),
	)

	return &Result{Account: acc, Token: tok, Created: created}, nil
}

// VerifyToken checks a bearer session token and returns the subject
// account ID. Reused by the boundary layer for protected routes.
func (s *Service) VerifyToken(raw string) (string, error) {
	return s.tokens.Verify(raw)
}
