package wallet

import "context"

type Repository interface {
	// GetByReferralCode returns ErrWalletNotFound when no wallet has the code.
	GetByReferralCode(ctx context.Context, code string) (*Wallet, error)
	GetByID(ctx context.Context, id uint) (*Wallet, error)
	// Upsert inserts or updates the wallet keyed by referral code.
	Upsert(ctx context.Context, w *Wallet) error
}
