// Package registration models the blockchain names a buyer can purchase.
package registration

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator splits an address into its local part and domain.
const Separator = "@"

// ErrInvalidName is returned for names that fail structural or syntax checks.
var ErrInvalidName = errors.New("invalid name")

// PurchaseType is what a name purchase buys.
type PurchaseType string

const (
	PurchaseTypeDomain  PurchaseType = "domain"
	PurchaseTypeAccount PurchaseType = "account"
)

func (t PurchaseType) IsValid() bool {
	return t == PurchaseTypeDomain || t == PurchaseTypeAccount
}

func (t PurchaseType) String() string {
	return string(t)
}

// Name is a parsed purchasable name: either a bare domain or local@domain.
type Name struct {
	domain string
	local  string
}

// Domain returns the domain part.
func (n Name) Domain() string { return n.domain }

// Local returns the local part, empty for bare domains.
func (n Name) Local() string { return n.local }

// IsAddress reports whether the name is a local@domain address.
func (n Name) IsAddress() bool { return n.local != "" }

// AddressPtr returns the local part or nil for a bare domain.
func (n Name) AddressPtr() *string {
	if n.local == "" {
		return nil
	}
	local := n.local
	return &local
}

// PurchaseType derives the purchase type from the name shape.
func (n Name) PurchaseType() PurchaseType {
	if n.IsAddress() {
		return PurchaseTypeAccount
	}
	return PurchaseTypeDomain
}

func (n Name) String() string {
	if n.local == "" {
		return n.domain
	}
	return n.local + Separator + n.domain
}

var lower = cases.Lower(language.Und)

// Normalize trims and lower-cases a raw name.
func Normalize(raw string) string {
	return lower.String(strings.TrimSpace(raw))
}

// Split classifies a normalized name by separator count. It performs no
// character-set checks.
func Split(name string) (Name, error) {
	parts := strings.Split(name, Separator)
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return Name{}, ErrInvalidName
		}
		return Name{domain: parts[0]}, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Name{}, ErrInvalidName
		}
		return Name{local: parts[0], domain: parts[1]}, nil
	default:
		return Name{}, ErrInvalidName
	}
}
