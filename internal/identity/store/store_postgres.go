package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
	"github.com/devfelipenunes/zolvency-contracts/pkg/platform/sentinel"
)

// PostgresStore persists identity state in PostgreSQL, one table per key
// namespace. Nonce expiry is evaluated in SQL against expires_at so clocks
// stay consistent across instances.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool. Migrations must have
// been applied (internal/platform/postgres does this at startup).
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetConfig(ctx context.Context) (models.Config, error) {
	var cfg models.Config
	err := s.pool.QueryRow(ctx,
		`SELECT admin, access_control, treasury, mint_fee FROM identity_config WHERE id = 1`,
	).Scan(&cfg.Admin, &cfg.AccessControl, &cfg.Treasury, &cfg.MintFee)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Config{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Config{}, fmt.Errorf("get config: %w", err)
	}
	return cfg, nil
}

func (s *PostgresStore) PutConfig(ctx context.Context, cfg models.Config) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO identity_config (id, admin, access_control, treasury, mint_fee)
		 VALUES (1, $1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET admin = EXCLUDED.admin,
		     access_control = EXCLUDED.access_control,
		     treasury = EXCLUDED.treasury,
		     mint_fee = EXCLUDED.mint_fee`,
		cfg.Admin, cfg.AccessControl, cfg.Treasury, cfg.MintFee)
	if err != nil {
		return fmt.Errorf("put config: %w", err)
	}
	return nil
}

func (s *PostgresStore) NextTokenID(ctx context.Context) (uint64, error) {
	var next int64
	err := s.pool.QueryRow(ctx,
		`UPDATE identity_token_counter SET value = value + 1 WHERE id = 1 RETURNING value`,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("increment token counter: %w", err)
	}
	return uint64(next), nil
}

func (s *PostgresStore) GetCredential(ctx context.Context, tokenID uint64) (models.Credential, error) {
	var (
		cred          models.Credential
		id            int64
		contributions int64
		tier          int16
	)
	err := s.pool.QueryRow(ctx,
		`SELECT token_id, owner, username, contributions, tier, proof_data, minted_at, updated_at
		 FROM identity_credentials WHERE token_id = $1`, int64(tokenID),
	).Scan(&id, &cred.Owner, &cred.Username, &contributions, &tier, &cred.ProofData, &cred.MintedAt, &cred.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Credential{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("get credential: %w", err)
	}
	cred.TokenID = uint64(id)
	cred.Contributions = uint32(contributions)
	cred.Tier = models.Tier(tier)
	return cred, nil
}

func (s *PostgresStore) PutCredential(ctx context.Context, cred models.Credential) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO identity_credentials (token_id, owner, username, contributions, tier, proof_data, minted_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (token_id) DO UPDATE
		 SET username = EXCLUDED.username,
		     contributions = EXCLUDED.contributions,
		     tier = EXCLUDED.tier,
		     proof_data = EXCLUDED.proof_data,
		     updated_at = EXCLUDED.updated_at`,
		int64(cred.TokenID), cred.Owner, cred.Username, int64(cred.Contributions),
		int16(cred.Tier), cred.ProofData, cred.MintedAt, cred.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put credential: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetOwnerToken(ctx context.Context, account models.Account) (uint64, error) {
	var tokenID int64
	err := s.pool.QueryRow(ctx,
		`SELECT token_id FROM identity_holders WHERE account = $1`, account,
	).Scan(&tokenID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, sentinel.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get owner token: %w", err)
	}
	return uint64(tokenID), nil
}

func (s *PostgresStore) PutOwnerToken(ctx context.Context, account models.Account, tokenID uint64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO identity_holders (account, token_id) VALUES ($1, $2)
		 ON CONFLICT (account) DO UPDATE SET token_id = EXCLUDED.token_id`,
		account, int64(tokenID))
	if err != nil {
		return fmt.Errorf("put owner token: %w", err)
	}
	return nil
}

func (s *PostgresStore) HasIdentity(ctx context.Context, account models.Account) (bool, error) {
	var has bool
	err := s.pool.QueryRow(ctx,
		`SELECT has_identity FROM identity_presence WHERE account = $1`, account,
	).Scan(&has)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get identity flag: %w", err)
	}
	return has, nil
}

func (s *PostgresStore) SetHasIdentity(ctx context.Context, account models.Account, has bool) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO identity_presence (account, has_identity) VALUES ($1, $2)
		 ON CONFLICT (account) DO UPDATE SET has_identity = EXCLUDED.has_identity`,
		account, has)
	if err != nil {
		return fmt.Errorf("set identity flag: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetNonce(ctx context.Context, account models.Account) (uint64, error) {
	var value int64
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM identity_nonces WHERE account = $1 AND expires_at > now()`, account,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		// Never stored, or the inactivity window elapsed.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get nonce: %w", err)
	}
	return uint64(value), nil
}

func (s *PostgresStore) IncrementNonce(ctx context.Context, account models.Account) (uint64, error) {
	var value int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO identity_nonces (account, value, expires_at) VALUES ($1, 1, $2)
		 ON CONFLICT (account) DO UPDATE
		 SET value = CASE WHEN identity_nonces.expires_at <= now() THEN 1
		                  ELSE identity_nonces.value + 1 END,
		     expires_at = EXCLUDED.expires_at
		 RETURNING value`,
		account, time.Now().Add(NonceTTL)).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("increment nonce: %w", err)
	}
	return uint64(value), nil
}
