package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
	"github.com/devfelipenunes/zolvency-contracts/pkg/platform/sentinel"
)

// Redis key layout, one prefix per namespace.
const (
	redisKeyConfig   = "identity:cfg"
	redisKeyCounter  = "identity:ctr"
	redisKeyToken    = "identity:tok:"
	redisKeyHolder   = "identity:hld:"
	redisKeyPresence = "identity:has:"
	redisKeyNonce    = "identity:non:"
)

// RedisStore persists identity state in Redis. Records are JSON-encoded;
// counters use INCR; the nonce expiry window rides on native key TTLs, so no
// expiry bookkeeping happens in Go.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client. Client lifecycle is managed
// by the caller.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetConfig(ctx context.Context) (models.Config, error) {
	raw, err := s.client.Get(ctx, redisKeyConfig).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Config{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Config{}, fmt.Errorf("get config: %w", err)
	}
	var cfg models.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return models.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func (s *RedisStore) PutConfig(ctx context.Context, cfg models.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyConfig, raw, 0).Err(); err != nil {
		return fmt.Errorf("put config: %w", err)
	}
	return nil
}

func (s *RedisStore) NextTokenID(ctx context.Context) (uint64, error) {
	next, err := s.client.Incr(ctx, redisKeyCounter).Result()
	if err != nil {
		return 0, fmt.Errorf("increment token counter: %w", err)
	}
	return uint64(next), nil
}

func (s *RedisStore) GetCredential(ctx context.Context, tokenID uint64) (models.Credential, error) {
	raw, err := s.client.Get(ctx, redisKeyToken+strconv.FormatUint(tokenID, 10)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Credential{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("get credential: %w", err)
	}
	var cred models.Credential
	if err := json.Unmarshal(raw, &cred); err != nil {
		return models.Credential{}, fmt.Errorf("decode credential: %w", err)
	}
	return cred, nil
}

func (s *RedisStore) PutCredential(ctx context.Context, cred models.Credential) error {
	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	key := redisKeyToken + strconv.FormatUint(cred.TokenID, 10)
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("put credential: %w", err)
	}
	return nil
}

func (s *RedisStore) GetOwnerToken(ctx context.Context, account models.Account) (uint64, error) {
	raw, err := s.client.Get(ctx, redisKeyHolder+string(account)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, sentinel.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get owner token: %w", err)
	}
	tokenID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode owner token: %w", err)
	}
	return tokenID, nil
}

func (s *RedisStore) PutOwnerToken(ctx context.Context, account models.Account, tokenID uint64) error {
	key := redisKeyHolder + string(account)
	if err := s.client.Set(ctx, key, strconv.FormatUint(tokenID, 10), 0).Err(); err != nil {
		return fmt.Errorf("put owner token: %w", err)
	}
	return nil
}

func (s *RedisStore) HasIdentity(ctx context.Context, account models.Account) (bool, error) {
	raw, err := s.client.Get(ctx, redisKeyPresence+string(account)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get identity flag: %w", err)
	}
	return raw == "1", nil
}

func (s *RedisStore) SetHasIdentity(ctx context.Context, account models.Account, has bool) error {
	value := "0"
	if has {
		value = "1"
	}
	if err := s.client.Set(ctx, redisKeyPresence+string(account), value, 0).Err(); err != nil {
		return fmt.Errorf("set identity flag: %w", err)
	}
	return nil
}

func (s *RedisStore) GetNonce(ctx context.Context, account models.Account) (uint64, error) {
	raw, err := s.client.Get(ctx, redisKeyNonce+string(account)).Result()
	if errors.Is(err, redis.Nil) {
		// Never stored, or the TTL elapsed and Redis dropped the key.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get nonce: %w", err)
	}
	nonce, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode nonce: %w", err)
	}
	return nonce, nil
}

func (s *RedisStore) IncrementNonce(ctx context.Context, account models.Account) (uint64, error) {
	key := redisKeyNonce + string(account)
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, NonceTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("increment nonce: %w", err)
	}
	return uint64(incr.Val()), nil
}
