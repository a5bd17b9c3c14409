package account

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by lookups that match no account.
	ErrNotFound = errors.New("account: not found")

	// ErrConflict is returned when an insert or link would violate a
	// uniqueness constraint (email, federated ID). Storage must raise it
	// atomically; concurrent duplicate inserts never silently overwrite.
	ErrConflict = errors.New("account: conflict")
)

// Store is the persistence contract for accounts. It holds no auth
// logic; implementations must enforce email and federated-ID uniqueness
// at the storage layer.
type Store interface {
	// FindByEmail looks up an account by lower-cased email.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByEmailOrFederatedID performs the disjunctive lookup used by
	// the federated path: an account matching either join key resolves,
	// so a locally registered user authenticating federated-ly with the
	// same email lands on the same account.
	FindByEmailOrFederatedID(ctx context.Context, email, federatedID string) (*Account, error)

	// Insert persists a new account and returns it with storage-assigned
	// ID and timestamps. Duplicate email or federated ID yields ErrConflict.
	Insert(ctx context.Context, a *Account) (*Account, error)

	// LinkFederatedID attaches federatedID to an existing account. The
	// update is conditional: it succeeds only while the account is
	// unlinked or already linked to the same ID, so a concurrent link to
	// a different identity is never clobbered (ErrConflict instead).
	LinkFederatedID(ctx context.Context, accountID, federatedID string) error
}
