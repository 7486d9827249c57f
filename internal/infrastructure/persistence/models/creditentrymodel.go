package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditEntryModel is a signed balance delta for a buyer key. Negative is credit.
type CreditEntryModel struct {
	ID        uint            `gorm:"primaryKey"`
	OwnerKey  string          `gorm:"size:255;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Reason    string          `gorm:"size:255"`
	CreatedAt time.Time
}

func (CreditEntryModel) TableName() string {
	return "credit_entries"
}
