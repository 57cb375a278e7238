// Package identity defines the wire contract of the identity service HTTP
// API. It is a standalone module so client services can depend on the
// request and response shapes without importing the service itself.
package identity

// Tier names as they appear on the wire. Ordered from lowest to highest.
const (
	TierNovice      = "Novice"
	TierPro         = "Pro"
	TierArchitect   = "Architect"
	TierLegend      = "Legend"
	TierSingularity = "Singularity"
)

// InitializeRequest configures the service once. The caller becomes the
// admin account.
type InitializeRequest struct {
	AccessControl string `json:"access_control"`
	Treasury      string `json:"treasury"`
	MintFee       int64  `json:"mint_fee"`
}

// MintRequest issues a credential to the authenticated caller. Signature
// and proof are base64 in JSON per encoding/json []byte rules. Referrer is
// reserved and currently ignored.
type MintRequest struct {
	Username      string `json:"username"`
	Contributions uint32 `json:"contributions"`
	ProofData     []byte `json:"proof_data"`
	Signature     []byte `json:"signature"`
	Nonce         uint64 `json:"nonce"`
	Referrer      string `json:"referrer,omitempty"`
}

// MintResponse carries the identifier assigned to the new credential.
type MintResponse struct {
	TokenID uint64 `json:"token_id"`
}

// UpdateTokenRequest refreshes the contribution data of an existing
// credential. Only the credential owner may call it.
type UpdateTokenRequest struct {
	Username      string `json:"username"`
	Contributions uint32 `json:"contributions"`
	ProofData     []byte `json:"proof_data"`
}

// Credential is the public view of an issued credential.
type Credential struct {
	TokenID       uint64 `json:"token_id"`
	Owner         string `json:"owner"`
	Username      string `json:"username"`
	Contributions uint32 `json:"contributions"`
	Tier          string `json:"tier"`
	TierNumber    uint32 `json:"tier_number"`
	TierColor     string `json:"tier_color"`
	MintedAt      string `json:"minted_at"`
	UpdatedAt     string `json:"updated_at"`
}

// OwnerTokenResponse reports the token held by an account. TokenID is zero
// when the account holds none; identifiers are assigned from one.
type OwnerTokenResponse struct {
	TokenID uint64 `json:"token_id"`
}

// OwnerTokensResponse lists the tokens held by an account. At most one
// entry under the single-credential rule.
type OwnerTokensResponse struct {
	TokenIDs []uint64 `json:"token_ids"`
}

// HasIdentityResponse reports credential possession for an account.
type HasIdentityResponse struct {
	HasIdentity bool `json:"has_identity"`
}

// NonceResponse reports the next expected mint nonce for an account.
type NonceResponse struct {
	Nonce uint64 `json:"nonce"`
}

// MintFeeResponse reports the currently configured mint fee.
type MintFeeResponse struct {
	MintFee int64 `json:"mint_fee"`
}

// SetMintFeeRequest updates the mint fee. Admin only.
type SetMintFeeRequest struct {
	MintFee int64 `json:"mint_fee"`
}

// SetAccessControlRequest rotates the access-control account. Admin only.
type SetAccessControlRequest struct {
	AccessControl string `json:"access_control"`
}

// SetTreasuryRequest rotates the treasury account. Admin only.
type SetTreasuryRequest struct {
	Treasury string `json:"treasury"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
