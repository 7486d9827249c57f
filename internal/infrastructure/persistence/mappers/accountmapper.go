package mappers

import (
	"github.com/walletnames/registrar/internal/domain/account"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/models"
)

func AccountToModel(a *account.Account) *models.AccountModel {
	address := ""
	if a.Address() != nil {
		address = *a.Address()
	}
	return &models.AccountModel{
		ID:        a.ID(),
		WalletID:  a.WalletID(),
		Domain:    a.Domain(),
		Address:   address,
		OwnerKey:  a.OwnerKey(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}

func AccountToDomain(m *models.AccountModel) *account.Account {
	var address *string
	if m.Address != "" {
		addr := m.Address
		address = &addr
	}
	return account.ReconstructAccount(m.ID, m.WalletID, m.Domain, address, m.OwnerKey, m.CreatedAt, m.UpdatedAt)
}
