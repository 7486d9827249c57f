package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletModel struct {
	ID                uint            `gorm:"primaryKey"`
	ReferralCode      string          `gorm:"uniqueIndex;size:64;not null"`
	Name              string          `gorm:"size:128;not null"`
	LogoURL           string          `gorm:"size:512"`
	DomainPrice       decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	AccountPrice      decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	DomainSaleActive  bool            `gorm:"not null"`
	AccountSaleActive bool            `gorm:"not null"`
	Active            bool            `gorm:"not null;index"`
	NotifyEmail       string          `gorm:"size:255"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (WalletModel) TableName() string {
	return "wallets"
}
