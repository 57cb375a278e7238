// Package store owns all persisted identity state. It exposes narrow typed
// operations per key namespace and enforces no business rules: reads fail
// only when a key is missing (sentinel.ErrNotFound), writes fail only on
// backend I/O.
//
// Three implementations share the Store contract: in-memory for tests and
// development, Redis for deployments that want native nonce expiry, and
// PostgreSQL for durable deployments.
package store

import (
	"context"
	"time"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
)

// NonceTTL is the inactivity window of a mint nonce. A nonce untouched for
// this long reads as zero again; every successful mint refreshes the window.
const NonceTTL = 30 * 24 * time.Hour

// Store is the sole owner of persisted identity state.
//
// Key namespaces mirror the ledger layout: CONFIG (singleton), TOKEN_CTR
// (global counter), TOK/tokenID (credential records), HLD/account (owner
// index), HAS/account (existence flag), NON/account (mint nonce, NonceTTL
// expiry).
type Store interface {
	// GetConfig returns the singleton configuration, or sentinel.ErrNotFound
	// before initialization.
	GetConfig(ctx context.Context) (models.Config, error)
	// PutConfig creates or overwrites the singleton configuration.
	PutConfig(ctx context.Context, cfg models.Config) error

	// NextTokenID increments the global token counter and returns the new
	// value. The counter starts at zero, so the first call returns 1. It is
	// never decremented.
	NextTokenID(ctx context.Context) (uint64, error)

	// GetCredential returns the credential for a token id, or
	// sentinel.ErrNotFound.
	GetCredential(ctx context.Context, tokenID uint64) (models.Credential, error)
	// PutCredential creates or overwrites a credential record.
	PutCredential(ctx context.Context, cred models.Credential) error

	// GetOwnerToken returns the token id held by an account, or
	// sentinel.ErrNotFound when the account holds none.
	GetOwnerToken(ctx context.Context, account models.Account) (uint64, error)
	// PutOwnerToken records the token id held by an account.
	PutOwnerToken(ctx context.Context, account models.Account, tokenID uint64) error

	// HasIdentity reports the existence flag for an account. Absent reads
	// as false, never as an error.
	HasIdentity(ctx context.Context, account models.Account) (bool, error)
	// SetHasIdentity sets the existence flag for an account.
	SetHasIdentity(ctx context.Context, account models.Account, has bool) error

	// GetNonce returns the current mint nonce for an account. Absent or
	// expired entries read as zero, never as an error.
	GetNonce(ctx context.Context, account models.Account) (uint64, error)
	// IncrementNonce advances the account's nonce by exactly one, refreshes
	// its expiry window, and returns the new value. An expired entry counts
	// as zero, so the first increment after expiry returns 1.
	IncrementNonce(ctx context.Context, account models.Account) (uint64, error)
}
