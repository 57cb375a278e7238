package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	wire "github.com/devfelipenunes/zolvency-contracts/contracts/identity"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/service"
	dErrors "github.com/devfelipenunes/zolvency-contracts/pkg/domain-errors"
	"github.com/devfelipenunes/zolvency-contracts/pkg/platform/httputil"
	"github.com/devfelipenunes/zolvency-contracts/pkg/requestcontext"
)

// Service defines the identity operations the handler exposes.
type Service interface {
	Initialize(ctx context.Context, admin, accessControl, treasury models.Account, mintFee int64) error
	Mint(ctx context.Context, caller models.Account, params service.MintParams) (uint64, error)
	UpdateToken(ctx context.Context, caller models.Account, tokenID uint64, params service.UpdateParams) error
	GetTokenData(ctx context.Context, tokenID uint64) (models.Credential, error)
	GetTokenSVG(ctx context.Context, tokenID uint64) (string, error)
	GetUserToken(ctx context.Context, account models.Account) (uint64, error)
	ListTokensOfUser(ctx context.Context, account models.Account) ([]uint64, error)
	HasIdentity(ctx context.Context, account models.Account) (bool, error)
	GetNonce(ctx context.Context, account models.Account) (uint64, error)
	GetMintFee(ctx context.Context) (int64, error)
	SetMintFee(ctx context.Context, caller models.Account, newFee int64) error
	SetAccessControl(ctx context.Context, caller, accessControl models.Account) error
	SetTreasury(ctx context.Context, caller, treasury models.Account) error
}

// Handler wires identity endpoints to the identity service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an identity handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts all identity endpoints on the router. Production wiring
// uses RegisterPublic and RegisterProtected to put JWT auth on the mutating
// routes only.
func (h *Handler) Register(r chi.Router) {
	h.RegisterPublic(r)
	h.RegisterProtected(r)
}

// RegisterPublic mounts the read-only endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/identity/tokens/{tokenID}", h.HandleGetToken)
	r.Get("/identity/tokens/{tokenID}/svg", h.HandleGetTokenSVG)
	r.Get("/identity/accounts/{account}/token", h.HandleGetAccountToken)
	r.Get("/identity/accounts/{account}/tokens", h.HandleListAccountTokens)
	r.Get("/identity/accounts/{account}/identity", h.HandleHasIdentity)
	r.Get("/identity/accounts/{account}/nonce", h.HandleGetNonce)
	r.Get("/identity/mint-fee", h.HandleGetMintFee)
}

// RegisterProtected mounts the mutating endpoints. Callers must arrive
// authenticated; handlers still re-check the account in context.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/identity/initialize", h.HandleInitialize)
	r.Post("/identity/mint", h.HandleMint)
	r.Put("/identity/tokens/{tokenID}", h.HandleUpdateToken)
	r.Post("/identity/admin/mint-fee", h.HandleSetMintFee)
	r.Post("/identity/admin/access-control", h.HandleSetAccessControl)
	r.Post("/identity/admin/treasury", h.HandleSetTreasury)
}

// caller returns the authenticated account, writing a 401 when the request
// carries none.
func (h *Handler) caller(w http.ResponseWriter, ctx context.Context) (models.Account, bool) {
	account := requestcontext.Account(ctx)
	if account == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return "", false
	}
	return models.Account(account), true
}

// tokenIDParam parses the {tokenID} path segment. Identifiers are assigned
// from one, so zero is rejected alongside garbage.
func (h *Handler) tokenIDParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := chi.URLParam(r, "tokenID")
	tokenID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || tokenID == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "token id must be a positive integer"))
		return 0, false
	}
	return tokenID, true
}

// accountParam reads the {account} path segment.
func (h *Handler) accountParam(w http.ResponseWriter, r *http.Request) (models.Account, bool) {
	account := chi.URLParam(r, "account")
	if account == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "account is required"))
		return "", false
	}
	return models.Account(account), true
}

// HandleInitialize handles POST /identity/initialize requests. The caller
// becomes the admin account.
func (h *Handler) HandleInitialize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[InitializeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	err := h.service.Initialize(ctx, caller, models.Account(req.AccessControl), models.Account(req.Treasury), req.MintFee)
	if err != nil {
		h.logger.WarnContext(ctx, "initialize failed", "request_id", requestID, "account", caller, "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "service initialized", "request_id", requestID, "admin", caller)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMint handles POST /identity/mint requests.
func (h *Handler) HandleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[MintRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tokenID, err := h.service.Mint(ctx, caller, service.MintParams{
		Signature:     req.Signature,
		Username:      req.Username,
		Contributions: req.Contributions,
		ProofData:     req.ProofData,
		Referrer:      models.Account(req.Referrer),
		Nonce:         req.Nonce,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "mint failed",
			"request_id", requestID,
			"account", caller,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "mint handled",
		"request_id", requestID,
		"account", caller,
		"token_id", tokenID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, wire.MintResponse{TokenID: tokenID})
}

// HandleUpdateToken handles PUT /identity/tokens/{tokenID} requests.
func (h *Handler) HandleUpdateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}
	tokenID, ok := h.tokenIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateTokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	err := h.service.UpdateToken(ctx, caller, tokenID, service.UpdateParams{
		Username:      req.Username,
		Contributions: req.Contributions,
		ProofData:     req.ProofData,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update failed",
			"request_id", requestID,
			"account", caller,
			"token_id", tokenID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "update handled", "request_id", requestID, "account", caller, "token_id", tokenID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetToken handles GET /identity/tokens/{tokenID} requests.
func (h *Handler) HandleGetToken(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := h.tokenIDParam(w, r)
	if !ok {
		return
	}

	cred, err := h.service.GetTokenData(r.Context(), tokenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCredential(cred))
}

// HandleGetTokenSVG handles GET /identity/tokens/{tokenID}/svg requests.
func (h *Handler) HandleGetTokenSVG(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := h.tokenIDParam(w, r)
	if !ok {
		return
	}

	markup, err := h.service.GetTokenSVG(r.Context(), tokenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(markup))
}

// HandleGetAccountToken handles GET /identity/accounts/{account}/token
// requests. TokenID is zero when the account holds no credential.
func (h *Handler) HandleGetAccountToken(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}

	tokenID, err := h.service.GetUserToken(r.Context(), account)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wire.OwnerTokenResponse{TokenID: tokenID})
}

// HandleListAccountTokens handles GET /identity/accounts/{account}/tokens
// requests.
func (h *Handler) HandleListAccountTokens(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}

	tokenIDs, err := h.service.ListTokensOfUser(r.Context(), account)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wire.OwnerTokensResponse{TokenIDs: tokenIDs})
}

// HandleHasIdentity handles GET /identity/accounts/{account}/identity
// requests.
func (h *Handler) HandleHasIdentity(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}

	has, err := h.service.HasIdentity(r.Context(), account)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wire.HasIdentityResponse{HasIdentity: has})
}

// HandleGetNonce handles GET /identity/accounts/{account}/nonce requests.
func (h *Handler) HandleGetNonce(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}

	nonce, err := h.service.GetNonce(r.Context(), account)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wire.NonceResponse{Nonce: nonce})
}

// HandleGetMintFee handles GET /identity/mint-fee requests.
func (h *Handler) HandleGetMintFee(w http.ResponseWriter, r *http.Request) {
	fee, err := h.service.GetMintFee(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wire.MintFeeResponse{MintFee: fee})
}

// HandleSetMintFee handles POST /identity/admin/mint-fee requests.
func (h *Handler) HandleSetMintFee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetMintFeeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetMintFee(ctx, caller, req.MintFee); err != nil {
		h.logger.WarnContext(ctx, "set mint fee failed", "request_id", requestID, "account", caller, "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "mint fee updated", "request_id", requestID, "mint_fee", req.MintFee)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetAccessControl handles POST /identity/admin/access-control
// requests.
func (h *Handler) HandleSetAccessControl(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetAccessControlRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetAccessControl(ctx, caller, models.Account(req.AccessControl)); err != nil {
		h.logger.WarnContext(ctx, "set access control failed", "request_id", requestID, "account", caller, "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "access control updated", "request_id", requestID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetTreasury handles POST /identity/admin/treasury requests.
func (h *Handler) HandleSetTreasury(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetTreasuryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetTreasury(ctx, caller, models.Account(req.Treasury)); err != nil {
		h.logger.WarnContext(ctx, "set treasury failed", "request_id", requestID, "account", caller, "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "treasury updated", "request_id", requestID)
	w.WriteHeader(http.StatusNoContent)
}
