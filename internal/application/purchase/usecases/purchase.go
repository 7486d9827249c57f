package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/walletnames/registrar/internal/application/purchase"
	"github.com/walletnames/registrar/internal/application/purchase/chain"
	"github.com/walletnames/registrar/internal/application/purchase/processor"
	"github.com/walletnames/registrar/internal/domain/account"
	"github.com/walletnames/registrar/internal/domain/payment"
	vo "github.com/walletnames/registrar/internal/domain/payment/valueobjects"
	"github.com/walletnames/registrar/internal/domain/registration"
	"github.com/walletnames/registrar/internal/domain/wallet"
	"github.com/walletnames/registrar/internal/shared/logger"
)

// PurchaseConfig is the explicit configuration of the purchase flow.
type PurchaseConfig struct {
	DefaultReferralCode string
	MinAccountPrice     decimal.Decimal
	ProcessorID         string
}

type PurchaseCommand struct {
	Address      string
	ReferralCode string
	PublicKey    string
	RedirectURL  *string
	// UserID is the authenticated caller, empty for anonymous requests.
	UserID string
}

type PurchaseResult struct {
	AccountID uint
	// Charge is nil when the purchase settled on the free path.
	Charge  *processor.Charge
	Status  vo.PayStatus
	Created bool
}

// IsFree reports whether the purchase settled without a processor charge.
func (r *PurchaseResult) IsFree() bool {
	return r.Charge == nil
}

type PurchaseUseCase struct {
	validator *registration.Validator
	wallets   wallet.Repository
	chain     chain.RegistrationChecker
	pricing   *purchase.PriceResolver
	ledger    *purchase.Ledger
	processor processor.PaymentProcessor
	notifier  ReviewNotifier
	logger    logger.Interface
	config    PurchaseConfig
}

func NewPurchaseUseCase(
	validator *registration.Validator,
	wallets wallet.Repository,
	checker chain.RegistrationChecker,
	pricing *purchase.PriceResolver,
	ledger *purchase.Ledger,
	proc processor.PaymentProcessor,
	notifier ReviewNotifier,
	logger logger.Interface,
	config PurchaseConfig,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		validator: validator,
		wallets:   wallets,
		chain:     checker,
		pricing:   pricing,
		ledger:    ledger,
		processor: proc,
		notifier:  notifier,
		logger:    logger,
		config:    config,
	}
}

func (uc *PurchaseUseCase) Execute(ctx context.Context, cmd PurchaseCommand) (*PurchaseResult, error) {
	name, err := uc.validator.Parse(cmd.Address)
	if err != nil {
		return nil, ErrInvalidAddress.WithDetails(err.Error())
	}
	if cmd.PublicKey == "" {
		return nil, ErrInvalidAddress.WithDetails("public key is required")
	}

	w, err := uc.loadWallet(ctx, cmd.ReferralCode)
	if err != nil {
		return nil, err
	}

	purchaseType := name.PurchaseType()
	if !w.SaleActive(purchaseType) {
		return nil, ErrNotForSale
	}
	if err := uc.validator.ValidateFor(name, purchaseType); err != nil {
		return nil, ErrInvalidAddress.WithDetails(err.Error())
	}

	registered, err := uc.chain.IsRegistered(ctx, name.String())
	if err != nil {
		uc.logger.Errorw("registry lookup failed", "error", err, "name", name.String())
		return nil, ErrRegistryUnavailable.WithDetails(err.Error())
	}
	if registered {
		return nil, ErrAlreadyRegistered
	}

	quote, err := uc.pricing.Resolve(ctx, w, purchaseType, cmd.PublicKey)
	switch {
	case errors.Is(err, purchase.ErrNotForSale):
		return nil, ErrNotForSale
	case errors.Is(err, purchase.ErrPriceTooLow):
		return nil, ErrPriceTooLow
	case err != nil:
		uc.logger.Errorw("failed to resolve price", "error", err, "wallet_id", w.ID())
		return nil, fmt.Errorf("failed to resolve price: %w", err)
	}
	if quote.RequiresAuth && cmd.UserID == "" {
		uc.logger.Warnw("anonymous zero-price purchase rejected",
			"name", name.String(),
			"referral_code", w.ReferralCode(),
		)
		return nil, ErrUnauthorized
	}

	result, err := uc.commit(ctx, cmd, w, name, purchaseType, quote)
	if err != nil {
		return nil, err
	}

	if result.Status == vo.PayStatusReview {
		uc.notifyReview(ctx, w, name, cmd.PublicKey, result)
	}

	uc.logger.Infow("purchase committed",
		"account_id", result.AccountID,
		"name", name.String(),
		"wallet_id", w.ID(),
		"status", result.Status,
		"free", result.IsFree(),
		"price", quote.Price.String(),
		"adjusted_price", quote.AdjustedPrice.String(),
	)
	return result, nil
}

func (uc *PurchaseUseCase) loadWallet(ctx context.Context, code string) (*wallet.Wallet, error) {
	if code == "" {
		code = uc.config.DefaultReferralCode
	}
	if code == "" {
		return nil, ErrReferralCodeNotFound
	}

	w, err := uc.wallets.GetByReferralCode(ctx, code)
	if errors.Is(err, wallet.ErrWalletNotFound) {
		return nil, ErrReferralCodeNotFound
	}
	if err != nil {
		uc.logger.Errorw("failed to load wallet", "error", err, "referral_code", code)
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	if !w.IsActive() {
		return nil, ErrReferralCodeNotFound
	}
	return w, nil
}

// commit runs account creation, the optional processor charge and the
// payment writes as one transaction.
func (uc *PurchaseUseCase) commit(
	ctx context.Context,
	cmd PurchaseCommand,
	w *wallet.Wallet,
	name registration.Name,
	purchaseType registration.PurchaseType,
	quote *purchase.Quote,
) (*PurchaseResult, error) {
	result := &PurchaseResult{}

	err := uc.ledger.InTransaction(ctx, func(ctx context.Context) error {
		acc, created, err := uc.ledger.FindOrCreateAccount(ctx, name, cmd.PublicKey, w.ID())
		if err != nil {
			return err
		}
		result.AccountID = acc.ID()
		result.Created = created

		if quote.IsFree(purchaseType) {
			if _, err := uc.ledger.RecordFreePayment(ctx, acc.ID(), quote.Price); err != nil {
				return err
			}
			result.Status = vo.PayStatusSuccess
			return nil
		}

		charge, err := uc.createCharge(ctx, cmd, w, acc, purchaseType, quote)
		if err != nil {
			return err
		}

		var p *payment.Payment
		if p, err = uc.ledger.RecordProcessorPayment(ctx, acc.ID(), quote.Price, uc.processor.ID(), charge); err != nil {
			return err
		}
		result.Charge = charge
		result.Status, _ = p.LatestStatus()
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrProcessorFailure) {
			uc.logger.Errorw("purchase transaction failed", "error", err, "name", name.String())
		}
		return nil, err
	}
	return result, nil
}

func (uc *PurchaseUseCase) createCharge(
	ctx context.Context,
	cmd PurchaseCommand,
	w *wallet.Wallet,
	acc *account.Account,
	purchaseType registration.PurchaseType,
	quote *purchase.Quote,
) (*processor.Charge, error) {
	charge, err := uc.processor.CreateCharge(ctx, processor.ChargeRequest{
		Name:         w.Name(),
		LogoURL:      w.LogoURL(),
		Price:        quote.AdjustedPrice,
		PurchaseType: purchaseType,
		Address:      acc.Name(),
		BuyerKey:     cmd.PublicKey,
		AccountID:    acc.ID(),
		RedirectURL:  cmd.RedirectURL,
	})
	if err != nil {
		uc.logger.Errorw("payment processor failed",
			"error", err,
			"processor", uc.processor.ID(),
			"account_id", acc.ID(),
		)
		return nil, ErrProcessorFailure.WithDetails(err.Error())
	}
	if charge == nil || charge.ExternID == "" {
		return nil, ErrProcessorFailure.WithDetails("charge without extern id")
	}
	return charge, nil
}

// notifyReview runs after commit; delivery failures never affect the result.
func (uc *PurchaseUseCase) notifyReview(ctx context.Context, w *wallet.Wallet, name registration.Name, ownerKey string, result *PurchaseResult) {
	if uc.notifier == nil || w.NotifyEmail() == "" {
		return
	}

	notice := ReviewNotice{
		WalletName:  w.Name(),
		NotifyEmail: w.NotifyEmail(),
		Name:        name.String(),
		OwnerKey:    ownerKey,
		AccountID:   result.AccountID,
		ExternID:    result.Charge.ExternID,
		ProcessorID: uc.processor.ID(),
	}
	if result.Charge.ExternStatus != nil {
		notice.ExternStatus = *result.Charge.ExternStatus
	}
	if result.Charge.ForwardURL != nil {
		notice.ForwardURL = *result.Charge.ForwardURL
	}

	if err := uc.notifier.NotifyReview(ctx, notice); err != nil {
		uc.logger.Warnw("failed to send review notification",
			"error", err,
			"extern_id", notice.ExternID,
			"wallet_id", w.ID(),
		)
	}
}
