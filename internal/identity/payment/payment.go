// Package payment defines the fee-transfer collaborator. The service only
// consumes the interface; execution against a real ledger lives outside this
// repo.
package payment

import (
	"context"
	"errors"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
)

// FeeTransferer moves the mint fee from the payer to the treasury. A nil
// error means the fee is collected; any error aborts the mint before side
// effects commit.
type FeeTransferer interface {
	Transfer(ctx context.Context, from, to models.Account, amount int64) error
}

// ErrDisabled reports that fee collection is not wired in this deployment.
var ErrDisabled = errors.New("fee transfer is not enabled")

// Disabled is the default transferer: it fails whenever a fee is actually
// due, so only free minting works until a real transferer is wired.
type Disabled struct{}

func (Disabled) Transfer(_ context.Context, _, _ models.Account, amount int64) error {
	if amount > 0 {
		return ErrDisabled
	}
	return nil
}
