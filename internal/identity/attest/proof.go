package attest

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/sha3"
)

// proofDomain separates proof commitments from signed mint messages.
const proofDomain = "identity.proof.v1"

// DigestProofVerifier validates a proof as a SHA3-256 commitment over the
// claimed contribution data. It stands in for the zero-knowledge verifier at
// the same interface boundary.
type DigestProofVerifier struct{}

var errProofMismatch = errors.New("proof does not commit to the claimed data")

func (DigestProofVerifier) VerifyProof(proof []byte, claim Claim) error {
	want := claimDigest(claim)
	if subtle.ConstantTimeCompare(proof, want[:]) != 1 {
		return errProofMismatch
	}
	return nil
}

// ProveClaim computes the commitment for a claim. Exposed so tests and the
// attestation tooling produce proofs the verifier accepts.
func ProveClaim(claim Claim) []byte {
	digest := claimDigest(claim)
	return digest[:]
}

func claimDigest(claim Claim) [32]byte {
	msg := make([]byte, 0, len(proofDomain)+len(claim.Caller)+len(claim.Username)+16)
	msg = appendBytes(msg, []byte(proofDomain))
	msg = appendBytes(msg, []byte(claim.Caller))
	msg = appendBytes(msg, []byte(claim.Username))
	msg = binary.BigEndian.AppendUint32(msg, claim.Contributions)
	return sha3.Sum256(msg)
}
