package handler

import (
	"strings"

	wire "github.com/devfelipenunes/zolvency-contracts/contracts/identity"
	dErrors "github.com/devfelipenunes/zolvency-contracts/pkg/domain-errors"
)

// maxUsernameLength caps usernames on the wire before they reach the
// service. Long names would also break the badge layout.
const maxUsernameLength = 64

// InitializeRequest is the HTTP request body for POST /identity/initialize.
type InitializeRequest struct {
	wire.InitializeRequest
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *InitializeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.AccessControl = strings.TrimSpace(r.AccessControl)
	r.Treasury = strings.TrimSpace(r.Treasury)
	if r.AccessControl == "" {
		return dErrors.New(dErrors.CodeValidation, "access_control is required")
	}
	if r.Treasury == "" {
		return dErrors.New(dErrors.CodeValidation, "treasury is required")
	}
	if r.MintFee < 0 {
		return dErrors.New(dErrors.CodeValidation, "mint_fee must be non-negative")
	}
	return nil
}

// MintRequest is the HTTP request body for POST /identity/mint.
type MintRequest struct {
	wire.MintRequest
}

// Validate validates the request.
func (r *MintRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Username == "" {
		return dErrors.New(dErrors.CodeValidation, "username is required")
	}
	if len(r.Username) > maxUsernameLength {
		return dErrors.New(dErrors.CodeValidation, "username must be at most 64 characters")
	}
	return nil
}

// UpdateTokenRequest is the HTTP request body for
// PUT /identity/tokens/{tokenID}.
type UpdateTokenRequest struct {
	wire.UpdateTokenRequest
}

// Validate validates the request.
func (r *UpdateTokenRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Username == "" {
		return dErrors.New(dErrors.CodeValidation, "username is required")
	}
	if len(r.Username) > maxUsernameLength {
		return dErrors.New(dErrors.CodeValidation, "username must be at most 64 characters")
	}
	return nil
}

// SetMintFeeRequest is the HTTP request body for POST /identity/admin/mint-fee.
type SetMintFeeRequest struct {
	wire.SetMintFeeRequest
}

// Validate validates the request.
func (r *SetMintFeeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.MintFee < 0 {
		return dErrors.New(dErrors.CodeValidation, "mint_fee must be non-negative")
	}
	return nil
}

// SetAccessControlRequest is the HTTP request body for
// POST /identity/admin/access-control.
type SetAccessControlRequest struct {
	wire.SetAccessControlRequest
}

// Validate validates the request.
func (r *SetAccessControlRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.AccessControl = strings.TrimSpace(r.AccessControl)
	if r.AccessControl == "" {
		return dErrors.New(dErrors.CodeValidation, "access_control is required")
	}
	return nil
}

// SetTreasuryRequest is the HTTP request body for
// POST /identity/admin/treasury.
type SetTreasuryRequest struct {
	wire.SetTreasuryRequest
}

// Validate validates the request.
func (r *SetTreasuryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Treasury = strings.TrimSpace(r.Treasury)
	if r.Treasury == "" {
		return dErrors.New(dErrors.CodeValidation, "treasury is required")
	}
	return nil
}
