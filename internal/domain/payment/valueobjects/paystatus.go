package valueobjects

// PayStatus is the local state of a payment event.
type PayStatus string

const (
	PayStatusSuccess PayStatus = "success"
	PayStatusCancel  PayStatus = "cancel"
	PayStatusPending PayStatus = "pending"
	PayStatusReview  PayStatus = "review"
)

func (s PayStatus) IsValid() bool {
	switch s {
	case PayStatusSuccess, PayStatusCancel, PayStatusPending, PayStatusReview:
		return true
	default:
		return false
	}
}

func (s PayStatus) IsSuccess() bool {
	return s == PayStatusSuccess
}

func (s PayStatus) String() string {
	return string(s)
}

// NormalizeChargeState maps a processor's tri-state pending flag to a local
// status. Success is never produced here; only the free path records it.
func NormalizeChargeState(pending *bool) PayStatus {
	switch {
	case pending == nil:
		return PayStatusReview
	case *pending:
		return PayStatusPending
	default:
		return PayStatusCancel
	}
}
