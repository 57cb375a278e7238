package models

import (
	dErrors "github.com/devfelipenunes/zolvency-contracts/pkg/domain-errors"
)

// Closed error taxonomy of the credential lifecycle. Every precondition
// violation surfaces as exactly one of these; none are retried internally,
// and a failed invocation leaves persisted state untouched.
//
// Each sentinel carries a domain-errors code so transport can map it onto an
// HTTP status without switching on identity.
var (
	// ErrAlreadyInitialized: initialize called after configuration exists.
	ErrAlreadyInitialized = dErrors.New(dErrors.CodeConflict, "service already initialized")

	// ErrNotInitialized: a credential operation ran before initialize.
	ErrNotInitialized = dErrors.New(dErrors.CodeConflict, "service not initialized")

	// ErrUnauthorized: a non-admin account called an admin operation.
	ErrUnauthorized = dErrors.New(dErrors.CodeForbidden, "caller is not the admin")

	// ErrAlreadyHasIdentity: the caller already holds a credential.
	ErrAlreadyHasIdentity = dErrors.New(dErrors.CodeConflict, "account already holds an identity")

	// ErrInvalidNonce: the supplied nonce does not exactly match the stored one.
	ErrInvalidNonce = dErrors.New(dErrors.CodeConflict, "nonce does not match expected value")

	// ErrInvalidUsername: empty username on mint or update.
	ErrInvalidUsername = dErrors.New(dErrors.CodeValidation, "username must not be empty")

	// ErrInvalidSignature: the attestation signature did not verify.
	ErrInvalidSignature = dErrors.New(dErrors.CodeUnauthorized, "attestation signature is invalid")

	// ErrInvalidProof: the contribution proof did not validate.
	ErrInvalidProof = dErrors.New(dErrors.CodeUnprocessable, "contribution proof is invalid")

	// ErrFeeTransferFailed: the mint fee could not be collected.
	ErrFeeTransferFailed = dErrors.New(dErrors.CodePaymentRequired, "mint fee transfer failed")

	// ErrTokenNotFound: no credential exists for the token id.
	ErrTokenNotFound = dErrors.New(dErrors.CodeNotFound, "token not found")

	// ErrNotTokenOwner: update attempted by an account other than the owner.
	ErrNotTokenOwner = dErrors.New(dErrors.CodeForbidden, "caller does not own this token")
)
