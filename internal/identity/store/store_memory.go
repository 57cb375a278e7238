package store

import (
	"context"
	"sync"
	"time"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
	"github.com/devfelipenunes/zolvency-contracts/pkg/platform/sentinel"
)

// InMemoryStore keeps all namespaces in maps guarded by one RWMutex. Used by
// unit tests and local development; Redis or Postgres back real deployments.
type InMemoryStore struct {
	mu          sync.RWMutex
	config      *models.Config
	tokenCtr    uint64
	credentials map[uint64]models.Credential
	ownerTokens map[models.Account]uint64
	hasIdentity map[models.Account]bool
	nonces      map[models.Account]nonceEntry

	now func() time.Time
}

// nonceEntry tracks the value together with its last refresh so expiry can
// be evaluated lazily on read.
type nonceEntry struct {
	value     uint64
	touchedAt time.Time
}

// InMemoryOption configures an InMemoryStore.
type InMemoryOption func(*InMemoryStore)

// WithClock injects a clock, letting tests drive nonce expiry.
func WithClock(now func() time.Time) InMemoryOption {
	return func(s *InMemoryStore) {
		s.now = now
	}
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore(opts ...InMemoryOption) *InMemoryStore {
	s := &InMemoryStore{
		credentials: make(map[uint64]models.Credential),
		ownerTokens: make(map[models.Account]uint64),
		hasIdentity: make(map[models.Account]bool),
		nonces:      make(map[models.Account]nonceEntry),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) GetConfig(_ context.Context) (models.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.config == nil {
		return models.Config{}, sentinel.ErrNotFound
	}
	return *s.config, nil
}

func (s *InMemoryStore) PutConfig(_ context.Context, cfg models.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = &cfg
	return nil
}

func (s *InMemoryStore) NextTokenID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenCtr++
	return s.tokenCtr, nil
}

func (s *InMemoryStore) GetCredential(_ context.Context, tokenID uint64) (models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[tokenID]
	if !ok {
		return models.Credential{}, sentinel.ErrNotFound
	}
	return cred, nil
}

func (s *InMemoryStore) PutCredential(_ context.Context, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[cred.TokenID] = cred
	return nil
}

func (s *InMemoryStore) GetOwnerToken(_ context.Context, account models.Account) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tokenID, ok := s.ownerTokens[account]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	return tokenID, nil
}

func (s *InMemoryStore) PutOwnerToken(_ context.Context, account models.Account, tokenID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerTokens[account] = tokenID
	return nil
}

func (s *InMemoryStore) HasIdentity(_ context.Context, account models.Account) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasIdentity[account], nil
}

func (s *InMemoryStore) SetHasIdentity(_ context.Context, account models.Account, has bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasIdentity[account] = has
	return nil
}

func (s *InMemoryStore) GetNonce(_ context.Context, account models.Account) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.liveNonce(account), nil
}

func (s *InMemoryStore) IncrementNonce(_ context.Context, account models.Account) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.liveNonce(account) + 1
	s.nonces[account] = nonceEntry{value: next, touchedAt: s.now()}
	return next, nil
}

// liveNonce evaluates the expiry policy: entries untouched for NonceTTL read
// as zero. Callers must hold at least the read lock.
func (s *InMemoryStore) liveNonce(account models.Account) uint64 {
	entry, ok := s.nonces[account]
	if !ok {
		return 0
	}
	if s.now().Sub(entry.touchedAt) >= NonceTTL {
		return 0
	}
	return entry.value
}
