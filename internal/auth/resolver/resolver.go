// Package resolver owns the federated identity-to-account mapping
// decision. It is the only place where merge, link and create logic for
// external identities lives.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"identity-service/internal/account"
	"identity-service/internal/auth/provider"
)

var (
	// ErrIncompleteIdentity rejects federated payloads missing the
	// subject, email or name claim; such identities cannot be onboarded.
	ErrIncompleteIdentity = errors.New("resolver: identity missing subject, email or name")

	// ErrIdentityConflict rejects an external subject that would relink
	// an account already bound to a different federated identity, or
	// claim a subject already bound to a different account. Ambiguous
	// identities are rejected, never silently reassigned.
	ErrIdentityConflict = errors.New("resolver: conflicting federated identity")
)

// Resolver maps a verified external identity to exactly one account.
type Resolver interface {
	Resolve(ctx context.Context, ident *provider.Identity) (acc *account.Account, created bool, err error)
}

// StoreResolver resolves identities against the account store. The
// lookup is disjunctive over email and federated ID so one real person
// reachable by either join key always lands on the same account.
type StoreResolver struct {
	store account.Store
}

func NewStoreResolver(store account.Store) *StoreResolver {
	return &StoreResolver{store: store}
}

func (r *StoreResolver) Resolve(
	ctx context.Context,
	ident *provider.Identity,
) (*account.Account, bool, error) {

	if ident == nil {
		return nil, false, errors.New("resolver: identity is nil")
	}
	if ident.Subject == "" || ident.Email == "" || ident.Name == "" {
		return nil, false, ErrIncompleteIdentity
	}

	email := account.NormalizeEmail(ident.Email)

	existing, err := r.store.FindByEmailOrFederatedID(ctx, email, ident.Subject)
	if err != nil && !errors.Is(err, account.ErrNotFound) {
		return nil, false, fmt.Errorf("resolver: lookup failed: %w", err)
	}

	if existing != nil {
		switch existing.FederatedID {
		case ident.Subject:
			// The subject already belongs to an account with a different
			// email: ambiguous identity, rejected.
			if existing.Email != email {
				return nil, false, ErrIdentityConflict
			}
			// Already linked; nothing to do.
			return existing, false, nil
		case "":
			// Local account sharing the email gains the federated ID.
			// The store update is conditional, so a concurrent link to a
			// different identity surfaces as a conflict here.
			if err := r.store.LinkFederatedID(ctx, existing.ID, ident.Subject); err != nil {
				if errors.Is(err, account.ErrConflict) {
					return nil, false, ErrIdentityConflict
				}
				return nil, false, fmt.Errorf("resolver: link failed: %w", err)
			}
			existing.FederatedID = ident.Subject
			return existing, false, nil
		default:
			// The email belongs to an account bound to another subject.
			return nil, false, ErrIdentityConflict
		}
	}

	created, err := r.store.Insert(ctx, &account.Account{
		Name:        ident.Name,
		Email:       email,
		FederatedID: ident.Subject,
	})
	if err != nil {
		return nil, false, fmt.Errorf("resolver: create failed: %w", err)
	}

	return created, true, nil
}
