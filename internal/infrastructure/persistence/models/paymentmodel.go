package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PaymentModel struct {
	ID         uint            `gorm:"primaryKey"`
	AccountID  uint            `gorm:"not null;index"`
	PaySource  string          `gorm:"size:32;not null"`
	ExternID   string          `gorm:"size:128;not null;index"`
	BuyPrice   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Metadata   datatypes.JSON
	Pricing    datatypes.JSON
	Addresses  datatypes.JSON
	ForwardURL *string `gorm:"size:1024"`
	CreatedAt  time.Time

	Events []PaymentEventModel `gorm:"foreignKey:PaymentID"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

// PaymentEventModel rows are insert-only.
type PaymentEventModel struct {
	ID           uint    `gorm:"primaryKey"`
	PaymentID    uint    `gorm:"not null;index"`
	EventID      string  `gorm:"size:64;not null"`
	PayStatus    string  `gorm:"size:16;not null;index"`
	ExternStatus *string `gorm:"size:64"`
	ExternTime   *string `gorm:"size:64"`
	CreatedAt    time.Time
}

func (PaymentEventModel) TableName() string {
	return "payment_events"
}
