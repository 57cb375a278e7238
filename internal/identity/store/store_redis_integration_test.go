//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/store"
	"github.com/devfelipenunes/zolvency-contracts/pkg/platform/sentinel"
	"github.com/devfelipenunes/zolvency-contracts/pkg/testutil/containers"
)

func newRedisStore(t *testing.T) (*store.RedisStore, *containers.RedisContainer) {
	t.Helper()
	rc := containers.NewRedisContainer(t)
	return store.NewRedisStore(rc.Client), rc
}

func TestRedisStore_ConfigRoundTrip(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	_, err := s.GetConfig(ctx)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	cfg := models.Config{Admin: "GADMIN", AccessControl: "GACL", Treasury: "GTREAS", MintFee: 5}
	require.NoError(t, s.PutConfig(ctx, cfg))

	got, err := s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	// Field overwrite keeps the singleton.
	cfg.MintFee = 9
	require.NoError(t, s.PutConfig(ctx, cfg))
	got, err = s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.MintFee)
}

func TestRedisStore_TokenCounterIsDense(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	for want := uint64(1); want <= 4; want++ {
		got, err := s.NextTokenID(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRedisStore_CredentialAndIndexes(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	_, err := s.GetCredential(ctx, 1)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = s.GetOwnerToken(ctx, "GALICE")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	minted := time.Now().UTC().Truncate(time.Second)
	cred := models.Credential{
		TokenID:       1,
		Owner:         "GALICE",
		Username:      "alice",
		Contributions: 1200,
		Tier:          models.TierArchitect,
		ProofData:     []byte{0x01},
		MintedAt:      minted,
		UpdatedAt:     minted,
	}
	require.NoError(t, s.PutCredential(ctx, cred))
	require.NoError(t, s.PutOwnerToken(ctx, "GALICE", 1))
	require.NoError(t, s.SetHasIdentity(ctx, "GALICE", true))

	got, err := s.GetCredential(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, cred, got)

	tokenID, err := s.GetOwnerToken(ctx, "GALICE")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tokenID)

	has, err := s.HasIdentity(ctx, "GALICE")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.HasIdentity(ctx, "GBOB")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRedisStore_NonceLifecycle(t *testing.T) {
	s, rc := newRedisStore(t)
	ctx := context.Background()

	// Absent reads as zero, never as an error.
	nonce, err := s.GetNonce(ctx, "GALICE")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), nonce)

	next, err := s.IncrementNonce(ctx, "GALICE")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), next)

	nonce, err = s.GetNonce(ctx, "GALICE")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)

	// The increment arms the inactivity window on the real server.
	ttl, err := rc.Client.TTL(ctx, "identity:non:GALICE").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, store.NonceTTL)
}
