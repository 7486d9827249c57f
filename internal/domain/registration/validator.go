package registration

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	maxNameLength   = 320
	maxDomainLength = 253
)

var (
	nameCharset = regexp.MustCompile(`^[a-z0-9.@_-]+$`)
	localPart   = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9._-]{0,62}[a-z0-9])?$`)
)

// SyntaxPredicate decides character-set and length validity of names.
type SyntaxPredicate interface {
	// Valid is the shared check covering both domain and address forms.
	Valid(name string) bool
	// ValidDomain checks a bare domain.
	ValidDomain(domain string) bool
	// ValidAddress checks a local part against its domain.
	ValidAddress(local, domain string) bool
}

// Syntax is the default SyntaxPredicate backed by go-playground/validator.
type Syntax struct {
	validate *validator.Validate
}

// NewSyntax builds the default predicate.
func NewSyntax() *Syntax {
	v := validator.New()
	_ = v.RegisterValidation("localpart", func(fl validator.FieldLevel) bool {
		return localPart.MatchString(fl.Field().String())
	})
	return &Syntax{validate: v}
}

func (s *Syntax) Valid(name string) bool {
	return len(name) <= maxNameLength && nameCharset.MatchString(name)
}

func (s *Syntax) ValidDomain(domain string) bool {
	if len(domain) > maxDomainLength || !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return s.validate.Var(domain, "required,hostname_rfc1123") == nil
}

func (s *Syntax) ValidAddress(local, domain string) bool {
	return s.validate.Var(local, "required,localpart") == nil && s.ValidDomain(domain)
}

// Validator parses purchase names and applies type-specific syntax rules.
type Validator struct {
	syntax SyntaxPredicate
}

// NewValidator creates a Validator over the given predicate.
func NewValidator(syntax SyntaxPredicate) *Validator {
	return &Validator{syntax: syntax}
}

// Parse normalizes raw, classifies it as domain or address, and runs the
// shared syntax predicate. It has no side effects.
func (v *Validator) Parse(raw string) (Name, error) {
	normalized := Normalize(raw)
	name, err := Split(normalized)
	if err != nil {
		return Name{}, fmt.Errorf("%q: %w", raw, err)
	}
	if !v.syntax.Valid(normalized) {
		return Name{}, fmt.Errorf("%q: %w", raw, ErrInvalidName)
	}
	return name, nil
}

// ValidateFor checks name against the rule of the given purchase type.
// Account purchases also require the domain part to be a valid bare domain.
func (v *Validator) ValidateFor(name Name, t PurchaseType) error {
	var ok bool
	switch t {
	case PurchaseTypeAccount:
		ok = name.IsAddress() && v.syntax.ValidAddress(name.Local(), name.Domain())
	case PurchaseTypeDomain:
		ok = !name.IsAddress() && v.syntax.ValidDomain(name.Domain())
	}
	if !ok {
		return fmt.Errorf("%s as %s: %w", name, t, ErrInvalidName)
	}
	return nil
}
