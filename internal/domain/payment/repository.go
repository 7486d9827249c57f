package payment

import "context"

type Repository interface {
	// Create inserts the payment together with its events.
	Create(ctx context.Context, p *Payment) error
	// GetByExternID loads a payment and its events by processor charge id.
	GetByExternID(ctx context.Context, externID string) (*Payment, error)
	ListByAccount(ctx context.Context, accountID uint) ([]*Payment, error)
}
