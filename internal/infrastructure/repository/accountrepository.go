package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/walletnames/registrar/internal/domain/account"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/mappers"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/models"
	"github.com/walletnames/registrar/internal/shared/db"
	apperrors "github.com/walletnames/registrar/internal/shared/errors"
	"github.com/walletnames/registrar/internal/shared/logger"
)

type AccountRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAccountRepository(db *gorm.DB, logger logger.Interface) *AccountRepository {
	return &AccountRepository{db: db, logger: logger}
}

// FindOrCreate relies on the (domain, address, owner_key) unique index.
// The insert is conflict-tolerant, so a concurrent winner is re-read instead
// of failing the caller or poisoning the surrounding transaction.
func (r *AccountRepository) FindOrCreate(ctx context.Context, acc *account.Account) (*account.Account, bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	model := mappers.AccountToModel(acc)

	existing, err := r.findByKey(tx, model)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up account: %w", err)
	}

	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(model)
	switch {
	case result.Error == nil && result.RowsAffected == 1:
		acc.SetID(model.ID)
		return acc, true, nil
	case result.Error != nil && !errors.Is(result.Error, gorm.ErrDuplicatedKey) && !apperrors.IsDuplicateError(result.Error):
		return nil, false, fmt.Errorf("failed to create account: %w", result.Error)
	}

	r.logger.Infow("account insert lost uniqueness race, using existing row",
		"domain", model.Domain,
		"address", model.Address,
		"owner_key", model.OwnerKey,
	)

	winner, err := r.findByKey(tx, model)
	if err != nil {
		return nil, false, fmt.Errorf("failed to re-read account after conflict: %w", err)
	}
	return winner, false, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uint) (*account.Account, error) {
	var model models.AccountModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return mappers.AccountToDomain(&model), nil
}

func (r *AccountRepository) findByKey(tx *gorm.DB, key *models.AccountModel) (*account.Account, error) {
	var model models.AccountModel
	err := tx.Where("domain = ? AND address = ? AND owner_key = ?", key.Domain, key.Address, key.OwnerKey).
		First(&model).Error
	if err != nil {
		return nil, err
	}
	return mappers.AccountToDomain(&model), nil
}
