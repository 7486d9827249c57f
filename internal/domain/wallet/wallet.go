// Package wallet holds referral partner configuration: pricing, sale state and branding.
package wallet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletnames/registrar/internal/domain/registration"
	"github.com/walletnames/registrar/internal/shared/biztime"
)

var ErrWalletNotFound = errors.New("wallet not found")

// Wallet is read-only input to a purchase.
type Wallet struct {
	id                uint
	referralCode      string
	name              string
	logoURL           string
	domainPrice       decimal.Decimal
	accountPrice      decimal.Decimal
	domainSaleActive  bool
	accountSaleActive bool
	active            bool
	notifyEmail       string
	createdAt         time.Time
	updatedAt         time.Time
}

// Pricing groups the per-type sale configuration of a wallet.
type Pricing struct {
	DomainPrice       decimal.Decimal
	AccountPrice      decimal.Decimal
	DomainSaleActive  bool
	AccountSaleActive bool
}

func NewWallet(referralCode, name, logoURL string, pricing Pricing) (*Wallet, error) {
	referralCode = strings.TrimSpace(referralCode)
	if referralCode == "" {
		return nil, fmt.Errorf("referral code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("wallet name is required")
	}
	if pricing.DomainPrice.IsNegative() || pricing.AccountPrice.IsNegative() {
		return nil, fmt.Errorf("prices must not be negative")
	}

	now := biztime.NowUTC()
	return &Wallet{
		referralCode:      referralCode,
		name:              name,
		logoURL:           logoURL,
		domainPrice:       pricing.DomainPrice,
		accountPrice:      pricing.AccountPrice,
		domainSaleActive:  pricing.DomainSaleActive,
		accountSaleActive: pricing.AccountSaleActive,
		active:            true,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructWallet rebuilds a Wallet from persistence.
func ReconstructWallet(
	id uint,
	referralCode, name, logoURL string,
	pricing Pricing,
	active bool,
	notifyEmail string,
	createdAt, updatedAt time.Time,
) *Wallet {
	return &Wallet{
		id:                id,
		referralCode:      referralCode,
		name:              name,
		logoURL:           logoURL,
		domainPrice:       pricing.DomainPrice,
		accountPrice:      pricing.AccountPrice,
		domainSaleActive:  pricing.DomainSaleActive,
		accountSaleActive: pricing.AccountSaleActive,
		active:            active,
		notifyEmail:       notifyEmail,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (w *Wallet) ID() uint             { return w.id }
func (w *Wallet) ReferralCode() string { return w.referralCode }
func (w *Wallet) Name() string         { return w.name }
func (w *Wallet) LogoURL() string      { return w.logoURL }
func (w *Wallet) IsActive() bool       { return w.active }
func (w *Wallet) NotifyEmail() string  { return w.notifyEmail }
func (w *Wallet) CreatedAt() time.Time { return w.createdAt }
func (w *Wallet) UpdatedAt() time.Time { return w.updatedAt }

func (w *Wallet) Pricing() Pricing {
	return Pricing{
		DomainPrice:       w.domainPrice,
		AccountPrice:      w.accountPrice,
		DomainSaleActive:  w.domainSaleActive,
		AccountSaleActive: w.accountSaleActive,
	}
}

// Price returns the configured price for t verbatim.
func (w *Wallet) Price(t registration.PurchaseType) decimal.Decimal {
	if t == registration.PurchaseTypeAccount {
		return w.accountPrice
	}
	return w.domainPrice
}

// SaleActive reports whether t is currently sold by this wallet.
func (w *Wallet) SaleActive(t registration.PurchaseType) bool {
	switch t {
	case registration.PurchaseTypeAccount:
		return w.accountSaleActive
	case registration.PurchaseTypeDomain:
		return w.domainSaleActive
	default:
		return false
	}
}

func (w *Wallet) SetID(id uint) {
	w.id = id
}

func (w *Wallet) SetNotifyEmail(email string) {
	w.notifyEmail = strings.TrimSpace(email)
	w.updatedAt = biztime.NowUTC()
}

func (w *Wallet) SetActive(active bool) {
	w.active = active
	w.updatedAt = biztime.NowUTC()
}
