package usecases

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/walletnames/registrar/internal/application/purchase"
	"github.com/walletnames/registrar/internal/application/purchase/processor"
	vo "github.com/walletnames/registrar/internal/domain/payment/valueobjects"
	"github.com/walletnames/registrar/internal/domain/registration"
	"github.com/walletnames/registrar/internal/domain/wallet"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/models"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/testdb"
	"github.com/walletnames/registrar/internal/infrastructure/repository"
	"github.com/walletnames/registrar/internal/shared/db"
	apperrors "github.com/walletnames/registrar/internal/shared/errors"
	"github.com/walletnames/registrar/internal/shared/logger"
)

type mockChecker struct{ mock.Mock }

func (m *mockChecker) IsRegistered(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

type mockProcessor struct{ mock.Mock }

func (m *mockProcessor) ID() string { return "coinbase" }

func (m *mockProcessor) CreateCharge(ctx context.Context, req processor.ChargeRequest) (*processor.Charge, error) {
	args := m.Called(ctx, req)
	charge, _ := args.Get(0).(*processor.Charge)
	return charge, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyReview(ctx context.Context, notice ReviewNotice) error {
	return m.Called(ctx, notice).Error(0)
}

type purchaseFixture struct {
	gdb       *gorm.DB
	wallets   *repository.WalletRepository
	checker   *mockChecker
	processor *mockProcessor
	notifier  *mockNotifier
	uc        *PurchaseUseCase
}

func newPurchaseFixture(t *testing.T, cfg PurchaseConfig) *purchaseFixture {
	t.Helper()
	gdb := testdb.New(t)
	f := &purchaseFixture{
		gdb:       gdb,
		wallets:   repository.NewWalletRepository(gdb),
		checker:   &mockChecker{},
		processor: &mockProcessor{},
		notifier:  &mockNotifier{},
	}
	ledger := purchase.NewLedger(
		db.NewTransactionManager(gdb),
		repository.NewAccountRepository(gdb, logger.NewNop()),
		repository.NewPaymentRepository(gdb),
		logger.NewNop(),
	)
	f.uc = NewPurchaseUseCase(
		registration.NewValidator(registration.NewSyntax()),
		f.wallets,
		f.checker,
		purchase.NewPriceResolver(repository.NewBalanceRepository(gdb), cfg.MinAccountPrice),
		ledger,
		f.processor,
		f.notifier,
		logger.NewNop(),
		cfg,
	)
	return f
}

func (f *purchaseFixture) addWallet(t *testing.T, code string, p wallet.Pricing, notifyEmail string) *wallet.Wallet {
	t.Helper()
	w, err := wallet.NewWallet(code, "Wallet "+code, "https://logo.example/"+code+".png", p)
	require.NoError(t, err)
	w.SetNotifyEmail(notifyEmail)
	require.NoError(t, f.wallets.Upsert(context.Background(), w))
	return w
}

func (f *purchaseFixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.gdb.Model(model).Count(&n).Error)
	return n
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func statusOf(err error) int {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return 0
}

func TestPurchase_ZeroPriceAnonymousIsUnauthorized(t *testing.T) {
	f := newPurchaseFixture(t, PurchaseConfig{ProcessorID: "coinbase"})
	f.addWallet(t, "W", wallet.Pricing{AccountPrice: decimal.Zero, AccountSaleActive: true}, "")
	f.checker.On("IsRegistered", mock.Anything, "bob@good.domain").Return(false, nil)

	_, err := f.uc.Execute(context.Background(), PurchaseCommand{Address: "bob@good.domain", ReferralCode: "W", PublicKey: "pk1"})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	assert.Zero(t, f.count(t, &models.AccountModel{}))
	f.processor.AssertNotCalled(t, "CreateCharge", mock.Anything, mock.Anything)
}

func TestPurchase_FreePathAuthenticated(t *testing.T) {
	f := newPurchaseFixture(t, PurchaseConfig{ProcessorID: "coinbase"})
	f.addWallet(t, "W", wallet.Pricing{AccountPrice: decimal.Zero, AccountSaleActive: true}, "")
	f.checker.On("IsRegistered", mock.Anything, "bob@good.domain").Return(false, nil)

	res, err := f.uc.Execute(context.Background(), PurchaseCommand{
		Address: "bob@good.domain", ReferralCode: "W", PublicKey: "pk1", UserID: "42",
	})
	require.NoError(t, err)

	assert.True(t, res.IsFree())
	assert.True(t, res.Created)
	assert.Equal(t, vo.PayStatusSuccess, res.Status)
	assert.NotZero(t, res.AccountID)
	assert.Equal(t, int64(1), f.count(t, &models.PaymentModel{}))
	assert.Equal(t, int64(1), f.count(t, &models.PaymentEventModel{}))

	var p models.PaymentModel
	require.NoError(t, f.gdb.Preload("Events").First(&p).Error)
	assert.Equal(t, "free", p.PaySource)
	require.Len(t, p.Events, 1)
	assert.Equal(t, "success", p.Events[0].PayStatus)
	assert.Equal(t, "0", p.Events[0].EventID)
	f.processor.AssertNotCalled(t, "CreateCharge", mock.Anything, mock.Anything)
}

func TestPurchase_CreditReducesChargedPrice(t *testing.T) {
	f := newPurchaseFixture(t, PurchaseConfig{ProcessorID: "coinbase"})
	f.addWallet(t, "W2", wallet.Pricing{DomainPrice: d("5.00"), DomainSaleActive: true}, "")
	require.NoError(t, f.gdb.Create(&models.CreditEntryModel{OwnerKey: "pk1", Amount: d("-2.00")}).Error)
	f.checker.On("IsRegistered", mock.Anything, "good.domain").Return(false, nil)

	pending := true
	forward := "https://pay.example/CHG1"
	f.processor.On("CreateCharge", mock.Anything, mock.MatchedBy(func(req processor.ChargeRequest) bool {
		return req.Price.Equal(d("3.00")) &&
			req.PurchaseType == registration.PurchaseTypeDomain &&
			req.Address == "good.domain" &&
			req.BuyerKey == "pk1" &&
			req.AccountID != 0
	})).Return(&processor.Charge{ExternID: "CHG1", Pending: &pending, ForwardURL: &forward}, nil).Once()

	res, err := f.uc.Execute(context.Background(), PurchaseCommand{Address: "good.domain", ReferralCode: "W2", PublicKey: "pk1"})
	require.NoError(t, err)

	f.processor.AssertExpectations(t)
	require.NotNil(t, res.Charge)
	assert.Equal(t, "CHG1", res.Charge.ExternID)
	assert.Equal(t, vo.PayStatusPending, res.Status)

	var p models.PaymentModel
	require.NoError(t, f.gdb.Preload("Events").Where("extern_id = ?", "CHG1").First(&p).Error)
	assert.Equal(t, "coinbase", p.PaySource)
	assert.True(t, p.BuyPrice.Equal(d("5")))
	require.Len(t, p.Events, 1)
	assert.Equal(t, "pending", p.Events[0].PayStatus)
}

func TestPurchase_CreditCoveringPriceSettlesFree(t *testing.T) {
	f := newPurchaseFixture(t, PurchaseConfig{ProcessorID: "coinbase"})
	f.addWallet(t, "W2", wallet.Pricing{DomainPrice: d("5.00"), DomainSaleActive: true}, "")
	require.NoError(t, f.gdb.Create(&models.CreditEntryModel{OwnerKey: "pk1", Amount: d("-6.00")}).Error)
	f.checker.On("IsRegistered", mock.Anything, "good.domain").Return(false, nil)

	res, err := f.uc.Execute(context.Background(), PurchaseCommand{Address: "good.domain", ReferralCode: "W2", PublicKey: "pk1"})
	require.NoError(t, err)
	assert.True(t, res.IsFree())
	f.processor.AssertNotCalled(t, "CreateCharge", mock.Anything, mock.Anything)
}

func TestPurchase_AlreadyRegisteredOnChain(t *testing.T) {
	f := newPurchaseFixture(t, PurchaseConfig{ProcessorID: "coinbase"})
	f.addWallet(t, "W", wallet.Pricing{DomainPrice: d("5"), DomainSaleActive: true}, "")
	f.checker.On("IsRegistered", mock.Anything, "good.domain").Return(true, nil)

	_, err := f.uc.Execute(context.Background(), PurchaseCommand{Address: "good.domain", ReferralCode: "W", PublicKey: "pk1"})

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
	assert.Equal(t, "Already registered", apperrors.GetAppError(err).Message)
	assert.Zero(t, f.count(t, &models.AccountModel{}))
}

func TestPurchase_MalformedAddressFailsBeforeLookups(t *testing.T) {
	f := newPurchaseFixture(t, PurchaseConfig{DefaultReferralCode: "W", ProcessorID: "coinbase"})

	_, err := f.uc.Execute(context.Background(), PurchaseCommand{Address: "a@b@c", PublicKey: "pk1"})

	assert.ErrorIs(t, err, ErrInvalidAddress)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	assert.Equal(t, "Invalid account", apperrors.GetAppError(err).Message)
	f.checker.AssertNotCalled(t, "IsRegistered", mock.Anything, mock.Anything)
}

func TestPurchase_WalletGates(t *testing.T) {
	tests := []struct {
		name    string
		cfg     PurchaseConfig
		setup   func(t *testing.T, f *purchaseFixture)
		cmd     PurchaseCommand
		wantErr error
		status  int
	}{
		{
			name:    "unknown referral code",
			cmd:     PurchaseCommand{Address: "good.domain", ReferralCode: "nope", PublicKey: "pk1"},
			wantErr: ErrReferralCodeNotFound,
			status:  http.StatusNotFound,
		},
		{
			name: "inactive wallet",
			setup: func(t *testing.T, f *purchaseFixture) {
				w := f.addWallet(t, "W", wallet.Pricing{DomainPrice: d("5"), DomainSaleActive: true}, "")
				w.SetActive(false)
				require.NoError(t, f.wallets.Upsert(context.Background(), w))
			},
			cmd:     PurchaseCommand{Address: "good.domain", ReferralCode: "W", PublicKey: "pk1"},
			wantErr: ErrReferralCodeNotFound,
			status:  http.StatusNotFound,
		},
		{
			name: "type not for sale",
			setup: func(t *testing.T, f *purchaseFixture) {
				f.addWallet(t, "W", wallet.Pricing{DomainPrice: d("5"), DomainSaleActive: true}, "")
			},
			cmd:     PurchaseCommand{Address: "bob@good.domain", ReferralCode: "W", PublicKey: "pk1"},
			wantErr: ErrNotForSale,
			status:  http.StatusBadRequest,
		},
		{
			name: "type-specific syntax",
			setup: func(t *testing.T, f *purchaseFixture) {
				f.addWallet(t, "W", wallet.Pricing{AccountPrice: d("1"), AccountSaleActive: true}, "")
			},
			cmd:     PurchaseCommand{Address: "bob@nodot", ReferralCode: "W", PublicKey: "pk1"},
			wantErr: ErrInvalidAddress,
			status:  http.StatusBadRequest,
		},
		{
			name: "account below floor",
			cfg:  PurchaseConfig{MinAccountPrice: d("2.00")},
			setup: func(t *testing.T, f *purchaseFixture) {
				f.addWallet(t, "W", wallet.Pricing{AccountPrice: d("1"), AccountSaleActive: true}, "")
				f.checker.On("IsRegistered", mock.Anything, "bob@good.domain").Return(false, nil)
			},
			cmd:     PurchaseCommand{Address: "bob@good.domain", ReferralCode: "W", PublicKey: "pk1"},
			wantErr: ErrPriceTooLow,
			status:  http.StatusBadRequest,
		},
		{
			name: "registry unavailable",
			setup: func(t *testing.T, f *purchaseFixture) {
				f.addWallet(t, "W", wallet.Pricing{DomainPrice: d("5"), DomainSaleActive: true}, "")
				f.checker.On("IsRegistered", mock.Anything, "good.domain").Return(false, errors.New("dial tcp: timeout"))
			},
			cmd:     PurchaseCommand{Address: "good.domain", ReferralCode: "W", PublicKey: "pk1"},
			wantErr: ErrRegistryUnavailable,
			status:  http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPurchaseFixture(t, tt.cfg)
			if tt.setup != nil {
				tt.setup(t, f)
			}
			_, err := f.uc.Execute(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.status, statusOf(err))
			assert.Zero(t, f.count(t, &models.AccountModel{}))
		})
	}
}

func TestPurchase_DefaultReferralCode(t *testing.T) {
	f := newPurchaseFixture(t, PurchaseConfig{DefaultReferralCode: "DEFAULT"})
	f.addWallet(t, "DEFAULT", wallet.Pricing{DomainPrice: d("0"), DomainSaleActive: true}, "")
	f.checker.On("IsRegistered", mock.Anything, "good.domain").Return(false, nil)

	res, err := f.uc.Execute(context.Background(), PurchaseCommand{Address: "good.domain", PublicKey: "pk1", UserID: "7"})
	require.NoError(t, err)
	assert.True(t, res.IsFree())
}

func TestPurchase_ProcessorFailureRollsBack(t *testing.T) {
	f := newPurchaseFixture(t, PurchaseConfig{})
	f.addWallet(t, "W", wallet.Pricing{DomainPrice: d("5"), DomainSaleActive: true}, "")
	f.checker.On("IsRegistered", mock.Anything, "good.domain").Return(false, nil)
	f.processor.On("CreateCharge", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

	_, err := f.uc.Execute(context.Background(), PurchaseCommand{Address: "good.domain", ReferralCode: "W", PublicKey: "pk1"})

	assert.ErrorIs(t, err, ErrProcessorFailure)
	assert.Equal(t, http.StatusBadGateway, statusOf(err))
	assert.Zero(t, f.count(t, &models.AccountModel{}))
	assert.Zero(t, f.count(t, &models.PaymentModel{}))
	assert.Zero(t, f.count(t, &models.PaymentEventModel{}))
}

func TestPurchase_ReviewNotifiesAfterCommit(t *testing.T) {
	f := newPurchaseFixture(t, PurchaseConfig{})
	f.addWallet(t, "W", wallet.Pricing{DomainPrice: d("5"), DomainSaleActive: true}, "ops@wallet.example")
	f.checker.On("IsRegistered", mock.Anything, "good.domain").Return(false, nil)
	f.processor.On("CreateCharge", mock.Anything, mock.Anything).Return(&processor.Charge{ExternID: "CHG9"}, nil)
	f.notifier.On("NotifyReview", mock.Anything, mock.MatchedBy(func(n ReviewNotice) bool {
		return n.ExternID == "CHG9" && n.NotifyEmail == "ops@wallet.example" && n.Name == "good.domain"
	})).Return(errors.New("smtp down")).Once()

	res, err := f.uc.Execute(context.Background(), PurchaseCommand{Address: "good.domain", ReferralCode: "W", PublicKey: "pk1"})
	require.NoError(t, err)

	assert.Equal(t, vo.PayStatusReview, res.Status)
	f.notifier.AssertExpectations(t)
	assert.Equal(t, int64(1), f.count(t, &models.PaymentModel{}))
}

func TestPurchase_CancelledChargeIsRecorded(t *testing.T) {
	f := newPurchaseFixture(t, PurchaseConfig{})
	f.addWallet(t, "W", wallet.Pricing{DomainPrice: d("5"), DomainSaleActive: true}, "ops@wallet.example")
	f.checker.On("IsRegistered", mock.Anything, "good.domain").Return(false, nil)
	pending := false
	f.processor.On("CreateCharge", mock.Anything, mock.Anything).Return(&processor.Charge{ExternID: "CHG2", Pending: &pending}, nil)

	res, err := f.uc.Execute(context.Background(), PurchaseCommand{Address: "good.domain", ReferralCode: "W", PublicKey: "pk1"})
	require.NoError(t, err)
	assert.Equal(t, vo.PayStatusCancel, res.Status)
	f.notifier.AssertNotCalled(t, "NotifyReview", mock.Anything, mock.Anything)
}

func TestPurchase_ResubmissionYieldsSameAccount(t *testing.T) {
	f := newPurchaseFixture(t, PurchaseConfig{})
	f.addWallet(t, "W", wallet.Pricing{AccountPrice: decimal.Zero, AccountSaleActive: true}, "")
	f.checker.On("IsRegistered", mock.Anything, "bob@good.domain").Return(false, nil)

	cmd := PurchaseCommand{Address: "bob@good.domain", ReferralCode: "W", PublicKey: "pk1", UserID: "1"}

	const workers = 4
	ids := make([]uint, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.uc.Execute(context.Background(), cmd)
			errs[i] = err
			if err == nil {
				ids[i] = res.AccountID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, int64(1), f.count(t, &models.AccountModel{}))
	assert.Equal(t, int64(workers), f.count(t, &models.PaymentModel{}))
}
