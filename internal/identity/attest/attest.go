// Package attest defines the external attestation collaborators the service
// calls into and trusts: the signature check over a mint request and the
// contribution proof check. The service consumes the interfaces only;
// deployments pick the permissive stubs or the strict implementations.
package attest

import (
	"encoding/binary"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
)

// mintDomain separates mint messages from any other signed payloads the
// attestation server may produce.
const mintDomain = "identity.mint.v1"

// Claim is the contribution data a proof commits to.
type Claim struct {
	Caller        models.Account
	Username      string
	Contributions uint32
}

// SignatureVerifier checks the attestation server's signature over the
// canonical mint message.
type SignatureVerifier interface {
	VerifyMint(message, signature []byte) error
}

// ProofVerifier validates a contribution proof against the claimed data.
type ProofVerifier interface {
	VerifyProof(proof []byte, claim Claim) error
}

// MintMessage builds the canonical message the attestation server signs:
// domain tag, then each field length-prefixed so no two argument tuples can
// collide.
func MintMessage(caller models.Account, username string, contributions uint32, proofData []byte, nonce uint64) []byte {
	msg := make([]byte, 0, len(mintDomain)+len(caller)+len(username)+len(proofData)+32)
	msg = appendBytes(msg, []byte(mintDomain))
	msg = appendBytes(msg, []byte(caller))
	msg = appendBytes(msg, []byte(username))
	msg = binary.BigEndian.AppendUint32(msg, contributions)
	msg = appendBytes(msg, proofData)
	msg = binary.BigEndian.AppendUint64(msg, nonce)
	return msg
}

func appendBytes(dst, b []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(b)))
	return append(dst, b...)
}

// AcceptAll is the permissive stub wired by default. It accepts every
// signature and every proof; strict deployments swap in Ed25519Verifier and
// DigestProofVerifier.
type AcceptAll struct{}

func (AcceptAll) VerifyMint(_, _ []byte) error        { return nil }
func (AcceptAll) VerifyProof(_ []byte, _ Claim) error { return nil }
