// Package statestore holds the transient OAuth handshake state for the
// redirect flow: each issued state parameter maps to its PKCE code
// verifier. Entries are one-time and short-lived; this is handshake
// plumbing, not session state.
package statestore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a state is unknown, expired, or already
// consumed.
var ErrNotFound = errors.New("statestore: state not found")

// Store persists state -> PKCE verifier pairs with a TTL.
type Store interface {
	// Save records the verifier under state for at most ttl.
	Save(ctx context.Context, state, codeVerifier string, ttl time.Duration) error

	// Consume returns the verifier for state and deletes it. A state is
	// redeemable exactly once.
	Consume(ctx context.Context, state string) (string, error)
}
