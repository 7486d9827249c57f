package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/walletnames/registrar/internal/domain/account"
	"github.com/walletnames/registrar/internal/domain/payment"
	"github.com/walletnames/registrar/internal/domain/wallet"
	"github.com/walletnames/registrar/internal/shared/logger"
)

type WalletSummary struct {
	ReferralCode string `json:"referral_code"`
	Name         string `json:"name"`
	LogoURL      string `json:"logo_url,omitempty"`
}

type AccountSummary struct {
	ID       uint    `json:"id"`
	Domain   string  `json:"domain"`
	Address  *string `json:"address"`
	OwnerKey string  `json:"owner_key"`
}

type PaymentSummary struct {
	PaySource  string  `json:"pay_source"`
	ExternID   string  `json:"extern_id"`
	BuyPrice   string  `json:"buy_price"`
	ForwardURL *string `json:"forward_url,omitempty"`
	Status     string  `json:"status,omitempty"`
}

// ChargeSummary is the read-only view returned for an external charge id.
type ChargeSummary struct {
	Wallet  WalletSummary  `json:"wallet"`
	Account AccountSummary `json:"account"`
	Payment PaymentSummary `json:"payment"`
}

type LookupChargeUseCase struct {
	payments payment.Repository
	accounts account.Repository
	wallets  wallet.Repository
	logger   logger.Interface
}

func NewLookupChargeUseCase(
	payments payment.Repository,
	accounts account.Repository,
	wallets wallet.Repository,
	logger logger.Interface,
) *LookupChargeUseCase {
	return &LookupChargeUseCase{
		payments: payments,
		accounts: accounts,
		wallets:  wallets,
		logger:   logger,
	}
}

func (uc *LookupChargeUseCase) Execute(ctx context.Context, externID string) (*ChargeSummary, error) {
	if externID == "" {
		return nil, ErrNotFound
	}

	p, err := uc.payments.GetByExternID(ctx, externID)
	if errors.Is(err, payment.ErrPaymentNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		uc.logger.Errorw("failed to get payment", "error", err, "extern_id", externID)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	acc, err := uc.accounts.GetByID(ctx, p.AccountID())
	if errors.Is(err, account.ErrAccountNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	w, err := uc.wallets.GetByID(ctx, acc.WalletID())
	if errors.Is(err, wallet.ErrWalletNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	summary := &ChargeSummary{
		Wallet: WalletSummary{
			ReferralCode: w.ReferralCode(),
			Name:         w.Name(),
			LogoURL:      w.LogoURL(),
		},
		Account: AccountSummary{
			ID:       acc.ID(),
			Domain:   acc.Domain(),
			Address:  acc.Address(),
			OwnerKey: acc.OwnerKey(),
		},
		Payment: PaymentSummary{
			PaySource:  p.PaySource().String(),
			ExternID:   p.ExternID(),
			BuyPrice:   p.BuyPrice().StringFixed(2),
			ForwardURL: p.ForwardURL(),
		},
	}
	if status, ok := p.LatestStatus(); ok {
		summary.Payment.Status = status.String()
	}
	return summary, nil
}
