package attest

import (
	"crypto/ed25519"
	"errors"
)

// Ed25519Verifier checks mint signatures against the authorized attestation
// server's public key. This is the strict counterpart of AcceptAll.
type Ed25519Verifier struct {
	publicKey ed25519.PublicKey
}

var (
	errBadKeySize       = errors.New("attestation public key must be 32 bytes")
	errBadSignatureSize = errors.New("signature must be 64 bytes")
	errBadSignature     = errors.New("signature does not verify")
)

// NewEd25519Verifier builds a verifier for the given 32-byte public key.
func NewEd25519Verifier(publicKey []byte) (*Ed25519Verifier, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return nil, errBadKeySize
	}
	return &Ed25519Verifier{publicKey: ed25519.PublicKey(publicKey)}, nil
}

func (v *Ed25519Verifier) VerifyMint(message, signature []byte) error {
	if len(signature) != ed25519.SignatureSize {
		return errBadSignatureSize
	}
	if !ed25519.Verify(v.publicKey, message, signature) {
		return errBadSignature
	}
	return nil
}
