package mappers

import (
	"github.com/walletnames/registrar/internal/domain/wallet"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/models"
)

func WalletToModel(w *wallet.Wallet) *models.WalletModel {
	p := w.Pricing()
	return &models.WalletModel{
		ID:                w.ID(),
		ReferralCode:      w.ReferralCode(),
		Name:              w.Name(),
		LogoURL:           w.LogoURL(),
		DomainPrice:       p.DomainPrice,
		AccountPrice:      p.AccountPrice,
		DomainSaleActive:  p.DomainSaleActive,
		AccountSaleActive: p.AccountSaleActive,
		Active:            w.IsActive(),
		NotifyEmail:       w.NotifyEmail(),
		CreatedAt:         w.CreatedAt(),
		UpdatedAt:         w.UpdatedAt(),
	}
}

func WalletToDomain(m *models.WalletModel) *wallet.Wallet {
	return wallet.ReconstructWallet(
		m.ID,
		m.ReferralCode,
		m.Name,
		m.LogoURL,
		wallet.Pricing{
			DomainPrice:       m.DomainPrice,
			AccountPrice:      m.AccountPrice,
			DomainSaleActive:  m.DomainSaleActive,
			AccountSaleActive: m.AccountSaleActive,
		},
		m.Active,
		m.NotifyEmail,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
