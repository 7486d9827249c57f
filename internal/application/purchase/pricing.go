// Package purchase holds the pricing and ledger components of the name purchase flow.
package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/walletnames/registrar/internal/domain/credit"
	"github.com/walletnames/registrar/internal/domain/registration"
	"github.com/walletnames/registrar/internal/domain/wallet"
)

var (
	ErrNotForSale  = errors.New("not for sale")
	ErrPriceTooLow = errors.New("price below minimum")
)

// Quote is the priced outcome of a purchase.
type Quote struct {
	// Price is the wallet's configured price, before credit.
	Price decimal.Decimal
	// Balance is the buyer's signed balance as stored.
	Balance decimal.Decimal
	// AdjustedPrice is what the buyer owes after credit.
	AdjustedPrice decimal.Decimal
	// RequiresAuth is set for zero-price purchases.
	RequiresAuth bool
}

// IsFree reports whether the purchase settles without a processor charge.
func (q *Quote) IsFree(t registration.PurchaseType) bool {
	return (t == registration.PurchaseTypeAccount && q.Price.IsZero()) || q.AdjustedPrice.IsZero()
}

type PriceResolver struct {
	balances        credit.BalanceRepository
	minAccountPrice decimal.Decimal
}

func NewPriceResolver(balances credit.BalanceRepository, minAccountPrice decimal.Decimal) *PriceResolver {
	return &PriceResolver{balances: balances, minAccountPrice: minAccountPrice}
}

// Resolve prices a purchase of type t from w for buyerKey.
func (r *PriceResolver) Resolve(ctx context.Context, w *wallet.Wallet, t registration.PurchaseType, buyerKey string) (*Quote, error) {
	if !w.SaleActive(t) {
		return nil, ErrNotForSale
	}

	price := w.Price(t)
	if t == registration.PurchaseTypeAccount && price.LessThan(r.minAccountPrice) {
		return nil, fmt.Errorf("%w: %s < %s", ErrPriceTooLow, price, r.minAccountPrice)
	}

	balance, err := r.balances.GetBalance(ctx, buyerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer balance: %w", err)
	}

	return &Quote{
		Price:         price,
		Balance:       balance,
		AdjustedPrice: ApplyCredit(price, balance),
		RequiresAuth:  price.IsZero(),
	}, nil
}

// ApplyCredit reduces price by a negative balance, floored at zero and
// rounded half-up to two places. A positive balance does not surcharge.
func ApplyCredit(price, balance decimal.Decimal) decimal.Decimal {
	credit := decimal.Min(balance, decimal.Zero)
	return decimal.Max(decimal.Zero, price.Add(credit).Round(2))
}
