package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
	"github.com/devfelipenunes/zolvency-contracts/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	now   time.Time
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.now = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	s.store = NewInMemoryStore(WithClock(func() time.Time { return s.now }))
}

func (s *InMemoryStoreSuite) TestConfigRoundTrip() {
	_, err := s.store.GetConfig(context.Background())
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)

	cfg := models.Config{Admin: "GADMIN", AccessControl: "GACL", Treasury: "GTREAS", MintFee: 42}
	require.NoError(s.T(), s.store.PutConfig(context.Background(), cfg))

	got, err := s.store.GetConfig(context.Background())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), cfg, got)
}

func (s *InMemoryStoreSuite) TestNextTokenIDIsDenseFromOne() {
	for want := uint64(1); want <= 5; want++ {
		got, err := s.store.NextTokenID(context.Background())
		require.NoError(s.T(), err)
		assert.Equal(s.T(), want, got)
	}
}

func (s *InMemoryStoreSuite) TestCredentialRoundTrip() {
	_, err := s.store.GetCredential(context.Background(), 1)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)

	cred := models.Credential{
		TokenID:       1,
		Owner:         "GALICE",
		Username:      "alice",
		Contributions: 250,
		Tier:          models.TierPro,
		ProofData:     []byte{0x01, 0x02},
		MintedAt:      s.now,
		UpdatedAt:     s.now,
	}
	require.NoError(s.T(), s.store.PutCredential(context.Background(), cred))

	got, err := s.store.GetCredential(context.Background(), 1)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), cred, got)
}

func (s *InMemoryStoreSuite) TestOwnerIndexAndPresence() {
	_, err := s.store.GetOwnerToken(context.Background(), "GALICE")
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)

	has, err := s.store.HasIdentity(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.False(s.T(), has)

	require.NoError(s.T(), s.store.PutOwnerToken(context.Background(), "GALICE", 7))
	require.NoError(s.T(), s.store.SetHasIdentity(context.Background(), "GALICE", true))

	tokenID, err := s.store.GetOwnerToken(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(7), tokenID)

	has, err = s.store.HasIdentity(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.True(s.T(), has)
}

func (s *InMemoryStoreSuite) TestNonceStartsAtZeroAndIncrements() {
	nonce, err := s.store.GetNonce(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(0), nonce)

	next, err := s.store.IncrementNonce(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(1), next)

	next, err = s.store.IncrementNonce(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2), next)

	nonce, err = s.store.GetNonce(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2), nonce)
}

func (s *InMemoryStoreSuite) TestNonceExpiresAfterInactivityWindow() {
	_, err := s.store.IncrementNonce(context.Background(), "GALICE")
	require.NoError(s.T(), err)

	// Just inside the window the value survives.
	s.now = s.now.Add(NonceTTL - time.Second)
	nonce, err := s.store.GetNonce(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(1), nonce)

	// At the window boundary it reads as zero again.
	s.now = s.now.Add(time.Second)
	nonce, err = s.store.GetNonce(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(0), nonce)

	// The first increment after expiry restarts the epoch at one.
	next, err := s.store.IncrementNonce(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(1), next)
}

func (s *InMemoryStoreSuite) TestIncrementRefreshesExpiryWindow() {
	_, err := s.store.IncrementNonce(context.Background(), "GALICE")
	require.NoError(s.T(), err)

	// Each increment restarts the inactivity clock.
	s.now = s.now.Add(NonceTTL - time.Hour)
	next, err := s.store.IncrementNonce(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2), next)

	s.now = s.now.Add(NonceTTL - time.Hour)
	nonce, err := s.store.GetNonce(context.Background(), "GALICE")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2), nonce)
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}
