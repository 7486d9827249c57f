package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/walletnames/registrar/internal/application/purchase/processor"
	"github.com/walletnames/registrar/internal/domain/payment"
	"github.com/walletnames/registrar/internal/shared/logger"
)

const (
	CoinbaseProcessorID = "coinbase"

	defaultCoinbaseBaseURL = "https://api.commerce.coinbase.com"
	defaultCoinbaseVersion = "2018-03-22"
	defaultCoinbaseTimeout = 15 * time.Second
	coinbaseCurrency       = "USD"
	maxChargeNameLength    = 100
	maxCoinbaseResponse    = 1 << 20
)

type CoinbaseConfig struct {
	BaseURL    string
	APIKey     string
	APIVersion string
	Timeout    time.Duration
}

// CoinbaseProcessor creates hosted charges with a Coinbase Commerce style API.
type CoinbaseProcessor struct {
	config     CoinbaseConfig
	httpClient *http.Client
	sanitizer  *bluemonday.Policy
	logger     logger.Interface
}

var _ processor.PaymentProcessor = (*CoinbaseProcessor)(nil)

func NewCoinbaseProcessor(cfg CoinbaseConfig, logger logger.Interface) *CoinbaseProcessor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultCoinbaseBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultCoinbaseVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCoinbaseTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &CoinbaseProcessor{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger,
	}
}

func (p *CoinbaseProcessor) ID() string {
	return CoinbaseProcessorID
}

type coinbaseMoney struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type coinbaseChargeRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	PricingType string            `json:"pricing_type"`
	LocalPrice  coinbaseMoney     `json:"local_price"`
	Metadata    map[string]string `json:"metadata"`
	RedirectURL string            `json:"redirect_url,omitempty"`
	CancelURL   string            `json:"cancel_url,omitempty"`
}

type coinbaseTimelineEntry struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

type coinbaseCharge struct {
	Code      string                    `json:"code"`
	HostedURL string                    `json:"hosted_url"`
	Pricing   map[string]payment.Amount `json:"pricing"`
	Addresses map[string]string         `json:"addresses"`
	Metadata  map[string]any            `json:"metadata"`
	Timeline  []coinbaseTimelineEntry   `json:"timeline"`
}

type coinbaseResponse struct {
	Data  *coinbaseCharge `json:"data"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *CoinbaseProcessor) CreateCharge(ctx context.Context, req processor.ChargeRequest) (*processor.Charge, error) {
	body := coinbaseChargeRequest{
		Name:        p.chargeName(req.Name),
		Description: fmt.Sprintf("%s %s", req.PurchaseType, req.Address),
		PricingType: "fixed_price",
		LocalPrice: coinbaseMoney{
			Amount:   req.Price.StringFixed(2),
			Currency: coinbaseCurrency,
		},
		Metadata: map[string]string{
			"account_id":    strconv.FormatUint(uint64(req.AccountID), 10),
			"buyer_key":     req.BuyerKey,
			"name":          req.Address,
			"purchase_type": req.PurchaseType.String(),
		},
	}
	if req.RedirectURL != nil {
		body.RedirectURL = *req.RedirectURL
		body.CancelURL = *req.RedirectURL
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode charge: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/charges", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-CC-Api-Key", p.config.APIKey)
	httpReq.Header.Set("X-CC-Version", p.config.APIVersion)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create charge: %w", err)
	}
	defer resp.Body.Close()

	var decoded coinbaseResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxCoinbaseResponse)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode charge response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices || decoded.Data == nil {
		msg := http.StatusText(resp.StatusCode)
		if decoded.Error != nil && decoded.Error.Message != "" {
			msg = decoded.Error.Message
		}
		p.logger.Warnw("coinbase rejected charge",
			"status", resp.StatusCode,
			"message", msg,
			"account_id", req.AccountID,
		)
		return nil, fmt.Errorf("coinbase charge failed with status %d: %s", resp.StatusCode, msg)
	}

	charge := toCharge(decoded.Data)
	p.logger.Infow("coinbase charge created",
		"extern_id", charge.ExternID,
		"account_id", req.AccountID,
		"price", body.LocalPrice.Amount,
	)
	return charge, nil
}

// chargeName strips markup from the wallet display name.
func (p *CoinbaseProcessor) chargeName(name string) string {
	clean := strings.TrimSpace(html.UnescapeString(p.sanitizer.Sanitize(name)))
	if clean == "" {
		clean = "Name purchase"
	}
	if utf8.RuneCountInString(clean) > maxChargeNameLength {
		clean = string([]rune(clean)[:maxChargeNameLength])
	}
	return clean
}

func toCharge(data *coinbaseCharge) *processor.Charge {
	charge := &processor.Charge{
		ExternID:  data.Code,
		Metadata:  data.Metadata,
		Pricing:   data.Pricing,
		Addresses: data.Addresses,
	}
	if data.HostedURL != "" {
		hosted := data.HostedURL
		charge.ForwardURL = &hosted
	}
	if n := len(data.Timeline); n > 0 {
		last := data.Timeline[n-1]
		status, at := last.Status, last.Time
		charge.ExternStatus = &status
		if at != "" {
			charge.ExternTime = &at
		}
		charge.Pending = timelinePending(status)
	}
	return charge
}

// timelinePending maps a timeline status onto the tri-state pending flag.
func timelinePending(status string) *bool {
	var pending bool
	switch strings.ToUpper(status) {
	case "NEW", "PENDING":
		pending = true
	case "EXPIRED", "CANCELED":
		pending = false
	default:
		return nil
	}
	return &pending
}
