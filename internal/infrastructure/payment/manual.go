package payment

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/walletnames/registrar/internal/application/purchase/processor"
	"github.com/walletnames/registrar/internal/shared/logger"
)

const ManualProcessorID = "manual"

// ManualProcessor records charges that a wallet operator settles off-band.
// Its charges carry no pending state, so every one lands in review.
type ManualProcessor struct {
	logger logger.Interface
}

var _ processor.PaymentProcessor = (*ManualProcessor)(nil)

func NewManualProcessor(logger logger.Interface) *ManualProcessor {
	return &ManualProcessor{logger: logger}
}

func (p *ManualProcessor) ID() string {
	return ManualProcessorID
}

func (p *ManualProcessor) CreateCharge(ctx context.Context, req processor.ChargeRequest) (*processor.Charge, error) {
	status := "AWAITING_SETTLEMENT"
	charge := &processor.Charge{
		ExternID:     "manual-" + uuid.NewString(),
		ExternStatus: &status,
		Metadata: map[string]any{
			"account_id":    strconv.FormatUint(uint64(req.AccountID), 10),
			"buyer_key":     req.BuyerKey,
			"name":          req.Address,
			"purchase_type": req.PurchaseType.String(),
			"amount":        req.Price.StringFixed(2),
		},
	}
	if req.RedirectURL != nil {
		forward := *req.RedirectURL
		charge.ForwardURL = &forward
	}

	p.logger.Infow("manual charge recorded",
		"extern_id", charge.ExternID,
		"account_id", req.AccountID,
	)
	return charge, nil
}
