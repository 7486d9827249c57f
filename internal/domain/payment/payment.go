// Package payment records purchase intents against accounts and their
// append-only event history.
package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/walletnames/registrar/internal/domain/payment/valueobjects"
	"github.com/walletnames/registrar/internal/shared/biztime"
)

var ErrPaymentNotFound = errors.New("payment not found")

// InitialEventID is the event id written when a payment is created.
const InitialEventID = "0"

// Amount is a processor-quoted amount in some currency. Both fields are opaque.
type Amount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// Details carries the optional processor data stored with a payment.
type Details struct {
	Metadata   map[string]any
	Pricing    map[string]Amount
	Addresses  map[string]string
	ForwardURL *string
}

type Payment struct {
	id         uint
	accountID  uint
	paySource  vo.PaySource
	externID   string
	buyPrice   decimal.Decimal
	metadata   map[string]any
	pricing    map[string]Amount
	addresses  map[string]string
	forwardURL *string
	events     []*Event
	createdAt  time.Time
}

// NewPayment creates a payment with no events. buyPrice is the price before credit.
func NewPayment(accountID uint, source vo.PaySource, externID string, buyPrice decimal.Decimal, details Details) (*Payment, error) {
	if accountID == 0 {
		return nil, fmt.Errorf("account ID is required")
	}
	if source == "" {
		return nil, fmt.Errorf("pay source is required")
	}
	if externID == "" {
		return nil, fmt.Errorf("extern ID is required")
	}

	metadata := details.Metadata
	if len(metadata) == 0 {
		metadata = nil
	}
	forwardURL := details.ForwardURL
	if forwardURL != nil && *forwardURL == "" {
		forwardURL = nil
	}

	return &Payment{
		accountID:  accountID,
		paySource:  source,
		externID:   externID,
		buyPrice:   buyPrice,
		metadata:   metadata,
		pricing:    details.Pricing,
		addresses:  details.Addresses,
		forwardURL: forwardURL,
		createdAt:  biztime.NowUTC(),
	}, nil
}

// NewFreePayment creates a free payment already settled with a success event.
func NewFreePayment(accountID uint, externID string, buyPrice decimal.Decimal) (*Payment, error) {
	p, err := NewPayment(accountID, vo.PaySourceFree, externID, buyPrice, Details{})
	if err != nil {
		return nil, err
	}
	if err := p.AppendEvent(InitialEventID, vo.PayStatusSuccess, nil, nil); err != nil {
		return nil, err
	}
	return p, nil
}

func ReconstructPayment(
	id, accountID uint,
	source vo.PaySource,
	externID string,
	buyPrice decimal.Decimal,
	details Details,
	events []*Event,
	createdAt time.Time,
) *Payment {
	return &Payment{
		id:         id,
		accountID:  accountID,
		paySource:  source,
		externID:   externID,
		buyPrice:   buyPrice,
		metadata:   details.Metadata,
		pricing:    details.Pricing,
		addresses:  details.Addresses,
		forwardURL: details.ForwardURL,
		events:     events,
		createdAt:  createdAt,
	}
}

// AppendEvent adds an event. Existing events are never modified.
func (p *Payment) AppendEvent(eventID string, status vo.PayStatus, externStatus, externTime *string) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid pay status %q", status)
	}
	if eventID == "" {
		eventID = InitialEventID
	}
	p.events = append(p.events, &Event{
		paymentID:    p.id,
		eventID:      eventID,
		payStatus:    status,
		externStatus: externStatus,
		externTime:   externTime,
		createdAt:    biztime.NowUTC(),
	})
	return nil
}

func (p *Payment) ID() uint                     { return p.id }
func (p *Payment) AccountID() uint              { return p.accountID }
func (p *Payment) PaySource() vo.PaySource      { return p.paySource }
func (p *Payment) ExternID() string             { return p.externID }
func (p *Payment) BuyPrice() decimal.Decimal    { return p.buyPrice }
func (p *Payment) Metadata() map[string]any     { return p.metadata }
func (p *Payment) Pricing() map[string]Amount   { return p.pricing }
func (p *Payment) Addresses() map[string]string { return p.addresses }
func (p *Payment) ForwardURL() *string          { return p.forwardURL }
func (p *Payment) CreatedAt() time.Time         { return p.createdAt }

// Events returns a copy of the event list in insertion order.
func (p *Payment) Events() []*Event {
	out := make([]*Event, len(p.events))
	copy(out, p.events)
	return out
}

// LatestStatus returns the status of the most recent event, if any.
func (p *Payment) LatestStatus() (vo.PayStatus, bool) {
	if len(p.events) == 0 {
		return "", false
	}
	return p.events[len(p.events)-1].payStatus, true
}

func (p *Payment) SetID(id uint) {
	p.id = id
	for _, e := range p.events {
		e.paymentID = id
	}
}
