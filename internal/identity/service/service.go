// Package service is the orchestrator of the credential lifecycle. Entry
// points validate authorization and preconditions, invoke the domain
// functions, and read and write exclusively through the store. Raw storage
// is never touched here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/attest"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/metrics"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/payment"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/store"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/svg"
	"github.com/devfelipenunes/zolvency-contracts/internal/platform/events"
	dErrors "github.com/devfelipenunes/zolvency-contracts/pkg/domain-errors"
	"github.com/devfelipenunes/zolvency-contracts/pkg/platform/sentinel"
	"github.com/devfelipenunes/zolvency-contracts/pkg/requestcontext"
)

// MintParams carries a mint request for an authenticated caller. Referrer is
// reserved for a future revenue split and currently has no effect.
type MintParams struct {
	Signature     []byte
	Username      string
	Contributions uint32
	ProofData     []byte
	Referrer      models.Account
	Nonce         uint64
}

// UpdateParams carries the replacement contribution payload for an existing
// credential.
type UpdateParams struct {
	Username      string
	Contributions uint32
	ProofData     []byte
}

// Service implements the credential lifecycle. Construct with New; all
// collaborators default to the stubs described in the package docs.
type Service struct {
	store      store.Store
	signatures attest.SignatureVerifier
	proofs     attest.ProofVerifier
	fees       payment.FeeTransferer
	events     events.Sink
	metrics    *metrics.Metrics
	logger     *slog.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithSignatureVerifier replaces the permissive signature stub.
func WithSignatureVerifier(v attest.SignatureVerifier) Option {
	return func(s *Service) { s.signatures = v }
}

// WithProofVerifier replaces the permissive proof stub.
func WithProofVerifier(v attest.ProofVerifier) Option {
	return func(s *Service) { s.proofs = v }
}

// WithFeeTransferer replaces the disabled fee transferer.
func WithFeeTransferer(f payment.FeeTransferer) Option {
	return func(s *Service) { s.fees = f }
}

// WithEvents replaces the log-only event sink.
func WithEvents(sink events.Sink) Option {
	return func(s *Service) { s.events = sink }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock injects a clock for deterministic timestamps in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs the service around a store. Defaults: signatures and proofs
// accepted (attest.AcceptAll), fee collection disabled (payment.Disabled, so
// only free minting works), events logged, no metrics.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:      st,
		signatures: attest.AcceptAll{},
		proofs:     attest.AcceptAll{},
		fees:       payment.Disabled{},
		logger:     slog.Default(),
		tracer:     otel.Tracer("identity"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.events == nil {
		s.events = events.NewLogSink(s.logger)
	}
	return s
}

// Initialize persists the singleton configuration with the caller as admin
// and leaves the token counter at zero. Runs once; a second call fails with
// ErrAlreadyInitialized regardless of arguments.
func (s *Service) Initialize(ctx context.Context, admin, accessControl, treasury models.Account, mintFee int64) error {
	if mintFee < 0 {
		return dErrors.New(dErrors.CodeValidation, "mint fee must be non-negative")
	}

	_, err := s.store.GetConfig(ctx)
	if err == nil {
		return models.ErrAlreadyInitialized
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return fmt.Errorf("load config: %w", err)
	}

	cfg := models.Config{
		Admin:         admin,
		AccessControl: accessControl,
		Treasury:      treasury,
		MintFee:       mintFee,
	}
	if err := s.store.PutConfig(ctx, cfg); err != nil {
		return fmt.Errorf("persist config: %w", err)
	}

	s.logger.InfoContext(ctx, "identity service initialized",
		"admin", admin,
		"mint_fee", mintFee,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// Mint issues a soulbound credential to the caller. Preconditions are
// checked in a fixed order and the first violation aborts with no state
// written; on success the caller's nonce advances by exactly one and the new
// token id is returned.
func (s *Service) Mint(ctx context.Context, caller models.Account, params MintParams) (tokenID uint64, err error) {
	ctx, span := s.tracer.Start(ctx, "identity.Mint")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.ObserveMint(start, failureReason(err)) }()

	cfg, err := s.store.GetConfig(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return 0, models.ErrNotInitialized
	}
	if err != nil {
		return 0, fmt.Errorf("load config: %w", err)
	}

	if params.Username == "" {
		return 0, models.ErrInvalidUsername
	}

	// O(1) soulbound gate: the existence flag, not an index scan.
	has, err := s.store.HasIdentity(ctx, caller)
	if err != nil {
		return 0, fmt.Errorf("check identity flag: %w", err)
	}
	if has {
		return 0, models.ErrAlreadyHasIdentity
	}

	// Strict equality blocks both replay and skip-ahead.
	expected, err := s.store.GetNonce(ctx, caller)
	if err != nil {
		return 0, fmt.Errorf("load nonce: %w", err)
	}
	if params.Nonce != expected {
		return 0, models.ErrInvalidNonce
	}

	message := attest.MintMessage(caller, params.Username, params.Contributions, params.ProofData, params.Nonce)
	if verr := s.signatures.VerifyMint(message, params.Signature); verr != nil {
		s.logger.WarnContext(ctx, "mint signature rejected", "account", caller, "error", verr)
		return 0, models.ErrInvalidSignature
	}

	claim := attest.Claim{Caller: caller, Username: params.Username, Contributions: params.Contributions}
	if verr := s.proofs.VerifyProof(params.ProofData, claim); verr != nil {
		s.logger.WarnContext(ctx, "mint proof rejected", "account", caller, "error", verr)
		return 0, models.ErrInvalidProof
	}

	if cfg.MintFee > 0 {
		if ferr := s.fees.Transfer(ctx, caller, cfg.Treasury, cfg.MintFee); ferr != nil {
			s.logger.WarnContext(ctx, "mint fee transfer failed", "account", caller, "fee", cfg.MintFee, "error", ferr)
			return 0, models.ErrFeeTransferFailed
		}
	}

	// All preconditions hold; commit. The existence flag is the gate mint
	// checks, so it is written last.
	if _, err := s.store.IncrementNonce(ctx, caller); err != nil {
		return 0, fmt.Errorf("advance nonce: %w", err)
	}
	tokenID, err = s.store.NextTokenID(ctx)
	if err != nil {
		return 0, fmt.Errorf("assign token id: %w", err)
	}

	now := s.timestamp(ctx)
	cred := models.Credential{
		TokenID:       tokenID,
		Owner:         caller,
		Username:      params.Username,
		Contributions: params.Contributions,
		Tier:          models.TierFromContributions(params.Contributions),
		ProofData:     params.ProofData,
		MintedAt:      now,
		UpdatedAt:     now,
	}
	if err := s.store.PutCredential(ctx, cred); err != nil {
		return 0, fmt.Errorf("persist credential: %w", err)
	}
	if err := s.store.PutOwnerToken(ctx, caller, tokenID); err != nil {
		return 0, fmt.Errorf("persist owner index: %w", err)
	}
	if err := s.store.SetHasIdentity(ctx, caller, true); err != nil {
		return 0, fmt.Errorf("persist identity flag: %w", err)
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeIdentityMinted,
		Account:       caller,
		TokenID:       tokenID,
		Username:      cred.Username,
		Contributions: cred.Contributions,
		Tier:          cred.Tier.String(),
	})

	s.logger.InfoContext(ctx, "credential minted",
		"account", caller,
		"token_id", tokenID,
		"tier", cred.Tier.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return tokenID, nil
}

// UpdateToken overwrites the contribution payload of the caller's
// credential. Ownership is re-validated from the credential record itself,
// not the holder index, so index divergence can never mask a forged update.
// Token id, owner, and mint time are immutable.
func (s *Service) UpdateToken(ctx context.Context, caller models.Account, tokenID uint64, params UpdateParams) (err error) {
	ctx, span := s.tracer.Start(ctx, "identity.UpdateToken")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.ObserveUpdate(start, failureReason(err)) }()

	cred, err := s.store.GetCredential(ctx, tokenID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.ErrTokenNotFound
	}
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}

	if cred.Owner != caller {
		return models.ErrNotTokenOwner
	}

	if params.Username == "" {
		return models.ErrInvalidUsername
	}

	claim := attest.Claim{Caller: caller, Username: params.Username, Contributions: params.Contributions}
	if verr := s.proofs.VerifyProof(params.ProofData, claim); verr != nil {
		s.logger.WarnContext(ctx, "update proof rejected", "account", caller, "token_id", tokenID, "error", verr)
		return models.ErrInvalidProof
	}

	cred.Username = params.Username
	cred.Contributions = params.Contributions
	cred.Tier = models.TierFromContributions(params.Contributions)
	cred.ProofData = params.ProofData
	cred.UpdatedAt = s.timestamp(ctx)

	if err := s.store.PutCredential(ctx, cred); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeIdentityUpdated,
		Account:       caller,
		TokenID:       tokenID,
		Username:      cred.Username,
		Contributions: cred.Contributions,
		Tier:          cred.Tier.String(),
	})

	s.logger.InfoContext(ctx, "credential updated",
		"account", caller,
		"token_id", tokenID,
		"tier", cred.Tier.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// GetTokenData returns the credential for a token id.
func (s *Service) GetTokenData(ctx context.Context, tokenID uint64) (models.Credential, error) {
	cred, err := s.store.GetCredential(ctx, tokenID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Credential{}, models.ErrTokenNotFound
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("load credential: %w", err)
	}
	return cred, nil
}

// GetUserToken returns the token id held by an account, or zero when the
// account holds none. Holding no identity is a valid steady state, not an
// error.
func (s *Service) GetUserToken(ctx context.Context, account models.Account) (uint64, error) {
	tokenID, err := s.store.GetOwnerToken(ctx, account)
	if errors.Is(err, sentinel.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load owner token: %w", err)
	}
	return tokenID, nil
}

// HasIdentity reports whether an account holds a credential.
func (s *Service) HasIdentity(ctx context.Context, account models.Account) (bool, error) {
	has, err := s.store.HasIdentity(ctx, account)
	if err != nil {
		return false, fmt.Errorf("load identity flag: %w", err)
	}
	return has, nil
}

// GetNonce returns the next expected mint nonce for an account.
func (s *Service) GetNonce(ctx context.Context, account models.Account) (uint64, error) {
	nonce, err := s.store.GetNonce(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("load nonce: %w", err)
	}
	return nonce, nil
}

// GetMintFee returns the configured mint fee, or zero before initialization.
func (s *Service) GetMintFee(ctx context.Context) (int64, error) {
	cfg, err := s.store.GetConfig(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load config: %w", err)
	}
	return cfg.MintFee, nil
}

// GetTokenSVG renders the badge markup for a token.
func (s *Service) GetTokenSVG(ctx context.Context, tokenID uint64) (string, error) {
	cred, err := s.GetTokenData(ctx, tokenID)
	if err != nil {
		return "", err
	}
	return svg.Render(cred), nil
}

// ListTokensOfUser lists the token ids held by an account. At most one entry
// under the soulbound rule.
func (s *Service) ListTokensOfUser(ctx context.Context, account models.Account) ([]uint64, error) {
	tokenID, err := s.GetUserToken(ctx, account)
	if err != nil {
		return nil, err
	}
	if tokenID == 0 {
		return []uint64{}, nil
	}
	return []uint64{tokenID}, nil
}

// SetMintFee overwrites the mint fee. Admin only.
func (s *Service) SetMintFee(ctx context.Context, caller models.Account, newFee int64) error {
	if newFee < 0 {
		return dErrors.New(dErrors.CodeValidation, "mint fee must be non-negative")
	}
	cfg, err := s.requireAdmin(ctx, caller)
	if err != nil {
		return err
	}
	cfg.MintFee = newFee
	if err := s.store.PutConfig(ctx, cfg); err != nil {
		return fmt.Errorf("persist config: %w", err)
	}
	s.publish(ctx, events.Event{Type: events.TypeMintFeeUpdated, Account: caller, MintFee: newFee})
	return nil
}

// SetAccessControl rotates the access-control delegate account. Admin only.
func (s *Service) SetAccessControl(ctx context.Context, caller, accessControl models.Account) error {
	cfg, err := s.requireAdmin(ctx, caller)
	if err != nil {
		return err
	}
	cfg.AccessControl = accessControl
	if err := s.store.PutConfig(ctx, cfg); err != nil {
		return fmt.Errorf("persist config: %w", err)
	}
	s.publish(ctx, events.Event{Type: events.TypeAccessControlUpdated, Account: caller})
	return nil
}

// SetTreasury rotates the treasury account. Admin only.
func (s *Service) SetTreasury(ctx context.Context, caller, treasury models.Account) error {
	cfg, err := s.requireAdmin(ctx, caller)
	if err != nil {
		return err
	}
	cfg.Treasury = treasury
	if err := s.store.PutConfig(ctx, cfg); err != nil {
		return fmt.Errorf("persist config: %w", err)
	}
	s.publish(ctx, events.Event{Type: events.TypeTreasuryUpdated, Account: caller})
	return nil
}

// requireAdmin loads the configuration and checks the caller against the
// stored admin account.
func (s *Service) requireAdmin(ctx context.Context, caller models.Account) (models.Config, error) {
	cfg, err := s.store.GetConfig(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Config{}, models.ErrNotInitialized
	}
	if err != nil {
		return models.Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.Admin != caller {
		return models.Config{}, models.ErrUnauthorized
	}
	return cfg, nil
}

// publish emits a domain event enriched with the request metadata the
// middleware collected. State is already committed when events go out, so a
// failing sink is logged and never rolls back the invocation.
func (s *Service) publish(ctx context.Context, event events.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = requestcontext.ClientIP(ctx)
	event.UserAgent = requestcontext.UserAgent(ctx)
	event.Timestamp = s.timestamp(ctx)
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "event publish failed", "type", event.Type, "error", err)
	}
}

// timestamp returns the request-scoped time when the middleware captured
// one, so every write and event in a request shares a single instant;
// otherwise the service clock.
func (s *Service) timestamp(ctx context.Context) time.Time {
	if t, ok := requestcontext.RequestTime(ctx); ok {
		return t.UTC()
	}
	return s.now().UTC()
}

// failureReason maps an error onto the metrics label, empty for success.
func failureReason(err error) string {
	if err == nil {
		return ""
	}
	return string(dErrors.CodeOf(err))
}
