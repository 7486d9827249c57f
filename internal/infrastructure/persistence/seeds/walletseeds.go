// Package seeds loads operator-maintained wallet and credit fixtures.
package seeds

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/walletnames/registrar/internal/domain/wallet"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/models"
)

// File is the YAML document accepted by `migrate seed`.
type File struct {
	Wallets []WalletSeed `yaml:"wallets"`
	Credits []CreditSeed `yaml:"credits"`
}

type WalletSeed struct {
	ReferralCode      string          `yaml:"referral_code"`
	Name              string          `yaml:"name"`
	LogoURL           string          `yaml:"logo_url"`
	DomainPrice       decimal.Decimal `yaml:"domain_price"`
	AccountPrice      decimal.Decimal `yaml:"account_price"`
	DomainSaleActive  bool            `yaml:"domain_sale_active"`
	AccountSaleActive bool            `yaml:"account_sale_active"`
	// Active defaults to true when omitted.
	Active      *bool  `yaml:"active"`
	NotifyEmail string `yaml:"notify_email"`
}

// CreditSeed is a signed balance delta. Negative amounts are credit.
type CreditSeed struct {
	OwnerKey string          `yaml:"owner_key"`
	Amount   decimal.Decimal `yaml:"amount"`
	Reason   string          `yaml:"reason"`
}

// Result counts what Apply wrote.
type Result struct {
	Wallets int
	Credits int
}

func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &file, nil
}

// Apply upserts every wallet by referral code and inserts credits that are
// not already present, so the same file can be applied repeatedly.
func Apply(ctx context.Context, db *gorm.DB, wallets wallet.Repository, file *File) (*Result, error) {
	result := &Result{}

	for _, seed := range file.Wallets {
		w, err := wallet.NewWallet(seed.ReferralCode, seed.Name, seed.LogoURL, wallet.Pricing{
			DomainPrice:       seed.DomainPrice,
			AccountPrice:      seed.AccountPrice,
			DomainSaleActive:  seed.DomainSaleActive,
			AccountSaleActive: seed.AccountSaleActive,
		})
		if err != nil {
			return result, fmt.Errorf("invalid wallet %q: %w", seed.ReferralCode, err)
		}
		w.SetNotifyEmail(seed.NotifyEmail)
		if seed.Active != nil {
			w.SetActive(*seed.Active)
		}
		if err := wallets.Upsert(ctx, w); err != nil {
			return result, fmt.Errorf("failed to seed wallet %q: %w", seed.ReferralCode, err)
		}
		result.Wallets++
	}

	for _, seed := range file.Credits {
		if seed.OwnerKey == "" {
			return result, fmt.Errorf("credit entry without owner_key")
		}
		entry := models.CreditEntryModel{
			OwnerKey: seed.OwnerKey,
			Amount:   seed.Amount,
			Reason:   seed.Reason,
		}
		tx := db.WithContext(ctx).
			Where("owner_key = ? AND reason = ? AND amount = ?", seed.OwnerKey, seed.Reason, seed.Amount).
			FirstOrCreate(&entry)
		if tx.Error != nil {
			return result, fmt.Errorf("failed to seed credit for %q: %w", seed.OwnerKey, tx.Error)
		}
		if tx.RowsAffected > 0 {
			result.Credits++
		}
	}

	return result, nil
}
