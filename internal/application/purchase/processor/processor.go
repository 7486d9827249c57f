// Package processor defines the payment processor capability used by purchases.
package processor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/walletnames/registrar/internal/domain/payment"
	vo "github.com/walletnames/registrar/internal/domain/payment/valueobjects"
	"github.com/walletnames/registrar/internal/domain/registration"
)

var ErrUnknownProcessor = errors.New("unknown payment processor")

// ChargeRequest describes one purchase to be charged.
type ChargeRequest struct {
	Name         string
	LogoURL      string
	Price        decimal.Decimal
	PurchaseType registration.PurchaseType
	Address      string
	BuyerKey     string
	AccountID    uint
	RedirectURL  *string
}

// Charge is a processor's descriptor of a payment attempt. Pointer fields
// are optional and nil means the processor did not supply them. Pending is
// tri-state: nil means the charge state is indeterminate.
type Charge struct {
	EventID      *string                   `json:"event_id,omitempty"`
	Pending      *bool                     `json:"pending,omitempty"`
	ExternID     string                    `json:"extern_id"`
	ExternStatus *string                   `json:"extern_status,omitempty"`
	ExternTime   *string                   `json:"extern_time,omitempty"`
	Metadata     map[string]any            `json:"metadata,omitempty"`
	Pricing      map[string]payment.Amount `json:"pricing,omitempty"`
	Addresses    map[string]string         `json:"addresses,omitempty"`
	ForwardURL   *string                   `json:"forward_url,omitempty"`
}

// EventIDOrDefault returns the charge event id, or the initial id when absent.
func (c *Charge) EventIDOrDefault() string {
	if c.EventID == nil || *c.EventID == "" {
		return payment.InitialEventID
	}
	return *c.EventID
}

// State maps the charge to a local pay status.
func (c *Charge) State() vo.PayStatus {
	return vo.NormalizeChargeState(c.Pending)
}

// Details returns the optional fields stored with the payment.
func (c *Charge) Details() payment.Details {
	return payment.Details{
		Metadata:   c.Metadata,
		Pricing:    c.Pricing,
		Addresses:  c.Addresses,
		ForwardURL: c.ForwardURL,
	}
}

// PaymentProcessor creates charges with an external payment provider.
type PaymentProcessor interface {
	// ID is the opaque identifier recorded as the payment source.
	ID() string
	CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error)
}

// Registry selects a processor by configured identifier.
type Registry struct {
	processors map[string]PaymentProcessor
}

func NewRegistry(processors ...PaymentProcessor) *Registry {
	r := &Registry{processors: make(map[string]PaymentProcessor, len(processors))}
	for _, p := range processors {
		r.Register(p)
	}
	return r
}

func (r *Registry) Register(p PaymentProcessor) {
	r.processors[strings.ToLower(p.ID())] = p
}

func (r *Registry) Get(id string) (PaymentProcessor, error) {
	p, ok := r.processors[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownProcessor, id, strings.Join(r.IDs(), ", "))
	}
	return p, nil
}

// IDs lists registered processor identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.processors))
	for id := range r.processors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
