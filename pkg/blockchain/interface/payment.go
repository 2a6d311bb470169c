package interfaze

import (
	"context"
	"math/big"
)

// PaymentRail abstracts the chain holding the prize treasury. Implementations
// are responsible for any destination setup their chain requires before a
// transfer can settle.
type PaymentRail interface {
	// GetTreasuryBalance returns the treasury balance in the token's smallest
	// unit.
	GetTreasuryBalance(ctx context.Context) (*big.Int, error)

	// Transfer moves amount from the treasury to the destination address and
	// returns the settlement transaction hash after confirmation.
	Transfer(ctx context.Context, destination string, amount *big.Int) (string, error)
}
