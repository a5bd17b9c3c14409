package resolver

import (
	"context"
	"testing"

	"identity-service/internal/account"
	"identity-service/internal/auth/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func googleIdentity(subject, email, name string) *provider.Identity {
	return &provider.Identity{
		Provider: "google",
		Subject:  subject,
		Email:    email,
		Name:     name,
	}
}

func TestResolveRejectsIncompleteIdentity(t *testing.T) {
	r := NewStoreResolver(account.NewMemStore())
	ctx := context.Background()

	_, _, err := r.Resolve(ctx, googleIdentity("sub-1", "", "Jane"))
	assert.ErrorIs(t, err, ErrIncompleteIdentity)

	_, _, err = r.Resolve(ctx, googleIdentity("sub-1", "jane@example.com", ""))
	assert.ErrorIs(t, err, ErrIncompleteIdentity)

	// A missing subject never reaches the store; an account without any
	// credential would violate the credential-presence invariant.
	_, _, err = r.Resolve(ctx, googleIdentity("", "jane@example.com", "Jane"))
	assert.ErrorIs(t, err, ErrIncompleteIdentity)

	_, _, err = r.Resolve(ctx, nil)
	assert.Error(t, err)
}

func TestResolveCreatesNewAccount(t *testing.T) {
	r := NewStoreResolver(account.NewMemStore())
	ctx := context.Background()

	acc, created, err := r.Resolve(ctx, googleIdentity("sub-1", "Jane@Example.com", "Jane"))
	require.NoError(t, err)

	assert.True(t, created)
	assert.NotEmpty(t, acc.ID)
	assert.Equal(t, "jane@example.com", acc.Email)
	assert.Equal(t, "sub-1", acc.FederatedID)
	assert.False(t, acc.HasPassword())
}

func TestResolveIsIdempotent(t *testing.T) {
	r := NewStoreResolver(account.NewMemStore())
	ctx := context.Background()

	first, created, err := r.Resolve(ctx, googleIdentity("sub-1", "jane@example.com", "Jane"))
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := r.Resolve(ctx, googleIdentity("sub-1", "jane@example.com", "Jane"))
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestResolveLinksLocalAccountByEmail(t *testing.T) {
	store := account.NewMemStore()
	r := NewStoreResolver(store)
	ctx := context.Background()

	local, err := store.Insert(ctx, &account.Account{
		Name:         "Jane",
		Email:        "jane@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	acc, created, err := r.Resolve(ctx, googleIdentity("sub-1", "jane@example.com", "Jane"))
	require.NoError(t, err)

	// Same account, now linked; never a duplicate.
	assert.False(t, created)
	assert.Equal(t, local.ID, acc.ID)
	assert.Equal(t, "sub-1", acc.FederatedID)
	assert.True(t, acc.HasPassword())

	// The link is persisted.
	reloaded, err := store.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", reloaded.FederatedID)
}

func TestResolveRejectsConflictingRelink(t *testing.T) {
	store := account.NewMemStore()
	r := NewStoreResolver(store)
	ctx := context.Background()

	_, created, err := r.Resolve(ctx, googleIdentity("sub-1", "jane@example.com", "Jane"))
	require.NoError(t, err)
	require.True(t, created)

	// Same email, different external subject: ambiguous identity,
	// rejected rather than silently relinked.
	_, _, err = r.Resolve(ctx, googleIdentity("sub-2", "jane@example.com", "Jane"))
	assert.ErrorIs(t, err, ErrIdentityConflict)
}

func TestResolveRejectsSubjectBoundToDifferentEmail(t *testing.T) {
	store := account.NewMemStore()
	r := NewStoreResolver(store)
	ctx := context.Background()

	first, created, err := r.Resolve(ctx, googleIdentity("sub-1", "jane@example.com", "Jane"))
	require.NoError(t, err)
	require.True(t, created)

	// The subject already belongs to an account under another email.
	// Ambiguous identity: rejected, never silently resolved into the
	// subject's account.
	_, _, err = r.Resolve(ctx, googleIdentity("sub-1", "jane@newmail.com", "Jane"))
	assert.ErrorIs(t, err, ErrIdentityConflict)

	// The bound account is untouched.
	reloaded, err := store.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, reloaded.ID)
	assert.Equal(t, "sub-1", reloaded.FederatedID)
}
