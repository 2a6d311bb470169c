package testutil

import (
	"context"
	"math/big"
)

// MockPaymentRail is a payment rail with programmable behavior. The zero value
// reports an empty treasury and confirms every transfer.
type MockPaymentRail struct {
	GetTreasuryBalanceFunc func(ctx context.Context) (*big.Int, error)
	TransferFunc           func(ctx context.Context, destination string, amount *big.Int) (string, error)
}

func (m *MockPaymentRail) GetTreasuryBalance(ctx context.Context) (*big.Int, error) {
	if m.GetTreasuryBalanceFunc != nil {
		return m.GetTreasuryBalanceFunc(ctx)
	}

	return big.NewInt(0), nil
}

func (m *MockPaymentRail) Transfer(
	ctx context.Context, destination string, amount *big.Int,
) (string, error) {
	if m.TransferFunc != nil {
		return m.TransferFunc(ctx, destination, amount)
	}

	return "0xmocktx", nil
}
