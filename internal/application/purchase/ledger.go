package purchase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/walletnames/registrar/internal/application/purchase/processor"
	"github.com/walletnames/registrar/internal/domain/account"
	"github.com/walletnames/registrar/internal/domain/payment"
	vo "github.com/walletnames/registrar/internal/domain/payment/valueobjects"
	"github.com/walletnames/registrar/internal/domain/registration"
	"github.com/walletnames/registrar/internal/shared/biztime"
	"github.com/walletnames/registrar/internal/shared/logger"
)

// TxRunner executes fn inside one database transaction carried on ctx.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Ledger writes accounts, payments and payment events. Callers group its
// operations with InTransaction so they apply all-or-nothing.
type Ledger struct {
	tx        TxRunner
	accounts  account.Repository
	payments  payment.Repository
	logger    logger.Interface
	newFreeID func() string
}

func NewLedger(tx TxRunner, accounts account.Repository, payments payment.Repository, logger logger.Interface) *Ledger {
	return &Ledger{
		tx:        tx,
		accounts:  accounts,
		payments:  payments,
		logger:    logger,
		newFreeID: freeExternID,
	}
}

// freeExternID combines the current unix millis with a random suffix so ids
// stay distinct within the same millisecond.
func freeExternID() string {
	return fmt.Sprintf("free-%d-%s", biztime.NowUTC().UnixMilli(), uuid.NewString()[:8])
}

// InTransaction runs fn in a single unit of work.
func (l *Ledger) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return l.tx.RunInTransaction(ctx, fn)
}

// FindOrCreateAccount returns the account for name and ownerKey, creating it
// under walletID on first use.
func (l *Ledger) FindOrCreateAccount(ctx context.Context, name registration.Name, ownerKey string, walletID uint) (*account.Account, bool, error) {
	candidate, err := account.NewAccount(name, ownerKey, walletID)
	if err != nil {
		return nil, false, fmt.Errorf("invalid account: %w", err)
	}

	acc, created, err := l.accounts.FindOrCreate(ctx, candidate)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find or create account: %w", err)
	}
	if !created && acc.WalletID() != walletID {
		l.logger.Debugw("account already attributed to another wallet",
			"account_id", acc.ID(),
			"wallet_id", acc.WalletID(),
			"requested_wallet_id", walletID,
		)
	}
	return acc, created, nil
}

// RecordFreePayment records a settled free purchase with a single success event.
func (l *Ledger) RecordFreePayment(ctx context.Context, accountID uint, price decimal.Decimal) (*payment.Payment, error) {
	p, err := payment.NewFreePayment(accountID, l.newFreeID(), price)
	if err != nil {
		return nil, fmt.Errorf("failed to build free payment: %w", err)
	}
	if err := l.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RecordProcessorPayment records charge as a payment from source with its
// normalized initial event.
func (l *Ledger) RecordProcessorPayment(ctx context.Context, accountID uint, price decimal.Decimal, source string, charge *processor.Charge) (*payment.Payment, error) {
	p, err := payment.NewPayment(accountID, vo.NewPaySource(source), charge.ExternID, price, charge.Details())
	if err != nil {
		return nil, fmt.Errorf("failed to build payment: %w", err)
	}
	if err := p.AppendEvent(charge.EventIDOrDefault(), charge.State(), charge.ExternStatus, charge.ExternTime); err != nil {
		return nil, err
	}
	if err := l.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
