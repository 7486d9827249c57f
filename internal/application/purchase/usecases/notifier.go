package usecases

import "context"

// ReviewNotice describes a charge that needs manual review.
type ReviewNotice struct {
	WalletName   string
	NotifyEmail  string
	Name         string
	OwnerKey     string
	AccountID    uint
	ExternID     string
	ProcessorID  string
	ExternStatus string
	ForwardURL   string
}

// ReviewNotifier tells a wallet operator about a charge in review.
type ReviewNotifier interface {
	NotifyReview(ctx context.Context, notice ReviewNotice) error
}
