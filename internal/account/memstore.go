package account

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store used in tests and local development.
// It mirrors the constraint behavior of the Postgres store: unique
// lower-cased email, unique federated ID, conditional linking.
type MemStore struct {
	mu       sync.Mutex
	accounts map[string]*Account // keyed by ID
}

func NewMemStore() *MemStore {
	return &MemStore{accounts: make(map[string]*Account)}
}

func (m *MemStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = NormalizeEmail(email)
	for _, a := range m.accounts {
		if a.Email == email {
			return clone(a), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) FindByEmailOrFederatedID(ctx context.Context, email, federatedID string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = NormalizeEmail(email)
	for _, a := range m.accounts {
		if a.Email == email || (federatedID != "" && a.FederatedID == federatedID) {
			return clone(a), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) Insert(ctx context.Context, a *Account) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := NormalizeEmail(a.Email)
	for _, existing := range m.accounts {
		if existing.Email == email {
			return nil, ErrConflict
		}
		if a.FederatedID != "" && existing.FederatedID == a.FederatedID {
			return nil, ErrConflict
		}
	}

	now := time.Now()
	stored := clone(a)
	stored.ID = uuid.NewString()
	stored.Email = email
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.accounts[stored.ID] = stored

	return clone(stored), nil
}

func (m *MemStore) LinkFederatedID(ctx context.Context, accountID, federatedID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[accountID]
	if !ok {
		return ErrNotFound
	}
	if a.FederatedID != "" && a.FederatedID != federatedID {
		return ErrConflict
	}
	for _, other := range m.accounts {
		if other.ID != accountID && other.FederatedID == federatedID {
			return ErrConflict
		}
	}

	a.FederatedID = federatedID
	a.UpdatedAt = time.Now()
	return nil
}

func clone(a *Account) *Account {
	c := *a
	return &c
}
