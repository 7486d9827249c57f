package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletnames/registrar/internal/application/purchase/processor"
	"github.com/walletnames/registrar/internal/application/purchase/usecases"
	vo "github.com/walletnames/registrar/internal/domain/payment/valueobjects"
	"github.com/walletnames/registrar/internal/interfaces/http/handlers/testutil"
)

type mockPurchaseUC struct {
	got    usecases.PurchaseCommand
	called bool
	result *usecases.PurchaseResult
	err    error
}

func (m *mockPurchaseUC) Execute(ctx context.Context, cmd usecases.PurchaseCommand) (*usecases.PurchaseResult, error) {
	m.called = true
	m.got = cmd
	return m.result, m.err
}

type mockLookupUC struct {
	got    string
	result *usecases.ChargeSummary
	err    error
}

func (m *mockLookupUC) Execute(ctx context.Context, externID string) (*usecases.ChargeSummary, error) {
	m.got = externID
	return m.result, m.err
}

func newTestPurchaseHandler(p *mockPurchaseUC, l *mockLookupUC) *PurchaseHandler {
	return NewPurchaseHandler(p, l, testutil.NewMockLogger())
}

func TestPurchaseHandler_FreePath(t *testing.T) {
	uc := &mockPurchaseUC{result: &usecases.PurchaseResult{AccountID: 7, Status: vo.PayStatusSuccess}}
	h := newTestPurchaseHandler(uc, &mockLookupUC{})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/purchase", map[string]any{
		"address":      "bob@good.domain",
		"referralCode": "acme",
		"publicKey":    "pk1",
	})
	testutil.SetAuthContext(c, "user-1", "buyer")

	h.Purchase(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(7), body["account_id"])
	assert.Equal(t, false, body["error"])

	assert.Equal(t, "bob@good.domain", uc.got.Address)
	assert.Equal(t, "acme", uc.got.ReferralCode)
	assert.Equal(t, "pk1", uc.got.PublicKey)
	assert.Equal(t, "user-1", uc.got.UserID)
	assert.Nil(t, uc.got.RedirectURL)
}

func TestPurchaseHandler_ProcessorPath(t *testing.T) {
	pending := true
	forward := "https://pay.example/CHG1"
	uc := &mockPurchaseUC{result: &usecases.PurchaseResult{
		AccountID: 3,
		Status:    vo.PayStatusPending,
		Charge: &processor.Charge{
			Pending:    &pending,
			ExternID:   "CHG1",
			ForwardURL: &forward,
			Addresses:  map[string]string{"bitcoin": "bc1q"},
		},
	}}
	h := newTestPurchaseHandler(uc, &mockLookupUC{})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/purchase", map[string]any{
		"address":     "good.domain",
		"publicKey":   "pk1",
		"redirectUrl": "https://wallet.example/done",
	})

	h.Purchase(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success struct {
			Charge struct {
				ExternID   string            `json:"extern_id"`
				Pending    *bool             `json:"pending"`
				ForwardURL string            `json:"forward_url"`
				Addresses  map[string]string `json:"addresses"`
			} `json:"charge"`
		} `json:"success"`
		AccountID uint `json:"account_id"`
		Error     bool `json:"error"`
	}
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.Equal(t, "CHG1", body.Success.Charge.ExternID)
	require.NotNil(t, body.Success.Charge.Pending)
	assert.True(t, *body.Success.Charge.Pending)
	assert.Equal(t, forward, body.Success.Charge.ForwardURL)
	assert.Equal(t, "bc1q", body.Success.Charge.Addresses["bitcoin"])
	assert.Equal(t, uint(3), body.AccountID)
	assert.False(t, body.Error)

	assert.Empty(t, uc.got.UserID)
	require.NotNil(t, uc.got.RedirectURL)
	assert.Equal(t, "https://wallet.example/done", *uc.got.RedirectURL)
}

func TestPurchaseHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid address", usecases.ErrInvalidAddress.WithDetails("too many separators"), http.StatusBadRequest, "Invalid account"},
		{"referral code", usecases.ErrReferralCodeNotFound, http.StatusNotFound, "Referral code not found"},
		{"not for sale", usecases.ErrNotForSale, http.StatusBadRequest, "Not for sale"},
		{"already registered", usecases.ErrAlreadyRegistered, http.StatusNotFound, "Already registered"},
		{"unauthorized", usecases.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"price too low", usecases.ErrPriceTooLow, http.StatusBadRequest, "Price too low"},
		{"processor", usecases.ErrProcessorFailure.WithDetails("timeout"), http.StatusBadGateway, "Payment processor failure"},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError, "Internal server error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestPurchaseHandler(&mockPurchaseUC{err: tt.err}, &mockLookupUC{})
			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/purchase", map[string]any{
				"address":   "bob@good.domain",
				"publicKey": "pk1",
			})

			h.Purchase(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body testutil.ErrorResponse
			require.NoError(t, testutil.ParseResponse(w, &body))
			assert.Equal(t, tt.wantMsg, body.Error)
			assert.False(t, body.Success)
		})
	}
}

func TestPurchaseHandler_BadBody(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		uc := &mockPurchaseUC{}
		h := newTestPurchaseHandler(uc, &mockLookupUC{})
		c, w := testutil.NewRawContext(http.MethodPost, "/api/v1/purchase", `{"address":`)

		h.Purchase(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, uc.called)
	})

	t.Run("redirect is not a url", func(t *testing.T) {
		uc := &mockPurchaseUC{}
		h := newTestPurchaseHandler(uc, &mockLookupUC{})
		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/purchase", map[string]any{
			"address":     "bob@good.domain",
			"publicKey":   "pk1",
			"redirectUrl": "not a url",
		})

		h.Purchase(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body testutil.ErrorResponse
		require.NoError(t, testutil.ParseResponse(w, &body))
		assert.False(t, body.Success)
		assert.False(t, uc.called)
	})
}

func TestPurchaseHandler_GetCharge(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		lookup := &mockLookupUC{result: &usecases.ChargeSummary{
			Wallet:  usecases.WalletSummary{ReferralCode: "acme", Name: "Acme"},
			Account: usecases.AccountSummary{ID: 4, Domain: "good.domain", OwnerKey: "pk1"},
			Payment: usecases.PaymentSummary{PaySource: "coinbase", ExternID: "CHG9", BuyPrice: "4.50", Status: "pending"},
		}}
		h := newTestPurchaseHandler(&mockPurchaseUC{}, lookup)
		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/charges/CHG9", nil)
		testutil.SetURLParam(c, "extern_id", "CHG9")

		h.GetCharge(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "CHG9", lookup.got)
		var body usecases.ChargeSummary
		require.NoError(t, testutil.ParseResponse(w, &body))
		assert.Equal(t, "acme", body.Wallet.ReferralCode)
		assert.Equal(t, uint(4), body.Account.ID)
		assert.Nil(t, body.Account.Address)
		assert.Equal(t, "4.50", body.Payment.BuyPrice)
	})

	t.Run("not found", func(t *testing.T) {
		h := newTestPurchaseHandler(&mockPurchaseUC{}, &mockLookupUC{err: usecases.ErrNotFound})
		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/charges/nope", nil)
		testutil.SetURLParam(c, "extern_id", "nope")

		h.GetCharge(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body testutil.ErrorResponse
		require.NoError(t, testutil.ParseResponse(w, &body))
		assert.Equal(t, "Not found", body.Error)
		assert.False(t, body.Success)
	})
}

type stubPinger struct{ err error }

func (s stubPinger) PingContext(ctx context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(stubPinger{}).HealthCheck(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(stubPinger{err: errors.New("refused")}).HealthCheck(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
