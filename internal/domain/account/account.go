// Package account models a buyer's claim on a blockchain name.
package account

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/walletnames/registrar/internal/domain/registration"
	"github.com/walletnames/registrar/internal/shared/biztime"
)

var ErrAccountNotFound = errors.New("account not found")

// Account is unique on (domain, address, owner key) and never deleted.
type Account struct {
	id        uint
	walletID  uint
	domain    string
	address   *string
	ownerKey  string
	createdAt time.Time
	updatedAt time.Time
}

// NewAccount creates an unsaved account for name owned by ownerKey and
// attributed to walletID.
func NewAccount(name registration.Name, ownerKey string, walletID uint) (*Account, error) {
	ownerKey = strings.TrimSpace(ownerKey)
	if ownerKey == "" {
		return nil, fmt.Errorf("owner key is required")
	}
	if name.Domain() == "" {
		return nil, fmt.Errorf("domain is required")
	}
	if walletID == 0 {
		return nil, fmt.Errorf("wallet ID is required")
	}

	now := biztime.NowUTC()
	return &Account{
		walletID:  walletID,
		domain:    name.Domain(),
		address:   name.AddressPtr(),
		ownerKey:  ownerKey,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructAccount(id, walletID uint, domain string, address *string, ownerKey string, createdAt, updatedAt time.Time) *Account {
	return &Account{
		id:        id,
		walletID:  walletID,
		domain:    domain,
		address:   address,
		ownerKey:  ownerKey,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (a *Account) ID() uint             { return a.id }
func (a *Account) WalletID() uint       { return a.walletID }
func (a *Account) Domain() string       { return a.domain }
func (a *Account) Address() *string     { return a.address }
func (a *Account) OwnerKey() string     { return a.ownerKey }
func (a *Account) CreatedAt() time.Time { return a.createdAt }
func (a *Account) UpdatedAt() time.Time { return a.updatedAt }

func (a *Account) SetID(id uint) {
	a.id = id
}

// Name returns the full purchased name.
func (a *Account) Name() string {
	if a.address == nil {
		return a.domain
	}
	return *a.address + registration.Separator + a.domain
}
