package handler

import (
	"time"

	wire "github.com/devfelipenunes/zolvency-contracts/contracts/identity"
	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
)

// FromCredential converts a domain credential to its wire representation.
func FromCredential(cred models.Credential) wire.Credential {
	return wire.Credential{
		TokenID:       cred.TokenID,
		Owner:         string(cred.Owner),
		Username:      cred.Username,
		Contributions: cred.Contributions,
		Tier:          cred.Tier.String(),
		TierNumber:    uint32(cred.Tier.Number()),
		TierColor:     cred.Tier.Color(),
		MintedAt:      cred.MintedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     cred.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
