package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/walletnames/registrar/internal/domain/wallet"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/mappers"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/models"
	"github.com/walletnames/registrar/internal/shared/db"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByReferralCode(ctx context.Context, code string) (*wallet.Wallet, error) {
	var model models.WalletModel
	err := db.GetTxFromContext(ctx, r.db).Where("referral_code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wallet.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by referral code: %w", err)
	}
	return mappers.WalletToDomain(&model), nil
}

func (r *WalletRepository) GetByID(ctx context.Context, id uint) (*wallet.Wallet, error) {
	var model models.WalletModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wallet.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return mappers.WalletToDomain(&model), nil
}

// Upsert writes w keyed by referral code and writes back the stored ID.
func (r *WalletRepository) Upsert(ctx context.Context, w *wallet.Wallet) error {
	model := mappers.WalletToModel(w)
	model.ID = 0

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "referral_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "logo_url", "domain_price", "account_price",
			"domain_sale_active", "account_sale_active", "active",
			"notify_email", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert wallet: %w", err)
	}

	// The insert id is unreliable on the update path for some drivers.
	var stored models.WalletModel
	if err := tx.Select("id").Where("referral_code = ?", model.ReferralCode).First(&stored).Error; err != nil {
		return fmt.Errorf("failed to reload wallet: %w", err)
	}
	w.SetID(stored.ID)
	return nil
}
