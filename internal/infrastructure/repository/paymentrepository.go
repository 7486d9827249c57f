package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/walletnames/registrar/internal/domain/payment"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/mappers"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/models"
	"github.com/walletnames/registrar/internal/shared/db"
	"github.com/walletnames/registrar/internal/shared/mapper"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts the payment and its events. There is no update path:
// later state changes arrive as new events.
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	model, err := mappers.PaymentToModel(p)
	if err != nil {
		return fmt.Errorf("failed to map payment: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	p.SetID(model.ID)
	events := p.Events()
	for i := range model.Events {
		if i < len(events) {
			events[i].SetID(model.Events[i].ID)
		}
	}
	return nil
}

func (r *PaymentRepository) GetByExternID(ctx context.Context, externID string) (*payment.Payment, error) {
	var model models.PaymentModel
	err := db.GetTxFromContext(ctx, r.db).
		Preload("Events", orderByID).
		Where("extern_id = ?", externID).
		Scopes(db.Latest()).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by extern id: %w", err)
	}
	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepository) ListByAccount(ctx context.Context, accountID uint) ([]*payment.Payment, error) {
	var rows []models.PaymentModel
	err := db.GetTxFromContext(ctx, r.db).
		Preload("Events", orderByID).
		Where("account_id = ?", accountID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return mapper.MapSliceWithError(rows, func(m models.PaymentModel) (*payment.Payment, error) {
		return mappers.PaymentToDomain(&m)
	})
}

func orderByID(tx *gorm.DB) *gorm.DB {
	return tx.Order("id ASC")
}
