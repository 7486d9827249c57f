package usecases

import (
	"github.com/walletnames/registrar/internal/shared/errors"
)

// Purchase failures as rendered to callers. Each carries its HTTP status.
var (
	ErrInvalidAddress       = errors.NewBadRequestError("Invalid account")
	ErrReferralCodeNotFound = errors.NewNotFoundError("Referral code not found")
	ErrNotForSale           = errors.NewBadRequestError("Not for sale")
	ErrAlreadyRegistered    = errors.NewNotFoundError("Already registered")
	ErrUnauthorized         = errors.NewUnauthorizedError("Unauthorized")
	ErrPriceTooLow          = errors.NewBadRequestError("Price too low")
	ErrProcessorFailure     = errors.NewUpstreamError("Payment processor failure")
	ErrRegistryUnavailable  = errors.NewUpstreamError("Registry unavailable")
	ErrNotFound             = errors.NewNotFoundError("Not found")
)
