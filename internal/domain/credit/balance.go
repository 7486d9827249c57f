// Package credit exposes a buyer's running balance from prior over- or under-payments.
package credit

import (
	"context"

	"github.com/shopspring/decimal"
)

// BalanceRepository reads a buyer's signed balance. Negative means credit.
type BalanceRepository interface {
	GetBalance(ctx context.Context, ownerKey string) (decimal.Decimal, error)
}
