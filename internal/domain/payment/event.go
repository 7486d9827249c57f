package payment

import (
	"time"

	vo "github.com/walletnames/registrar/internal/domain/payment/valueobjects"
)

// Event is an immutable snapshot of a charge's state.
type Event struct {
	id           uint
	paymentID    uint
	eventID      string
	payStatus    vo.PayStatus
	externStatus *string
	externTime   *string
	createdAt    time.Time
}

func ReconstructEvent(id, paymentID uint, eventID string, status vo.PayStatus, externStatus, externTime *string, createdAt time.Time) *Event {
	return &Event{
		id:           id,
		paymentID:    paymentID,
		eventID:      eventID,
		payStatus:    status,
		externStatus: externStatus,
		externTime:   externTime,
		createdAt:    createdAt,
	}
}

func (e *Event) ID() uint                { return e.id }
func (e *Event) PaymentID() uint         { return e.paymentID }
func (e *Event) EventID() string         { return e.eventID }
func (e *Event) PayStatus() vo.PayStatus { return e.payStatus }
func (e *Event) ExternStatus() *string   { return e.externStatus }
func (e *Event) ExternTime() *string     { return e.externTime }
func (e *Event) CreatedAt() time.Time    { return e.createdAt }

func (e *Event) SetID(id uint) {
	e.id = id
}
