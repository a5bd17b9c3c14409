package auth

import "errors"

var (
	// ErrEmailTaken rejects a registration for an email that already has
	// an account, whether detected by lookup or by losing an insert race.
	ErrEmailTaken = errors.New("auth: email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password;
	// the two cases are deliberately indistinguishable so login does not
	// leak account existence.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrFederatedOnlyAccount rejects a password login against an account
	// that has no password credential.
	ErrFederatedOnlyAccount = errors.New("auth: account has no password credential")

	// ErrExternalTokenInvalid rejects a federated login whose provider
	// token failed verification.
	ErrExternalTokenInvalid = errors.New("auth: external token verification failed")
)
