package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/walletnames/registrar/internal/infrastructure/persistence/models"
	"github.com/walletnames/registrar/internal/shared/db"
)

// BalanceRepository sums credit entries per buyer key.
type BalanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

func (r *BalanceRepository) GetBalance(ctx context.Context, ownerKey string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CreditEntryModel{}).
		Select("SUM(amount)").
		Where("owner_key = ?", ownerKey).
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum balance: %w", err)
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
