package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/walletnames/registrar/internal/domain/payment"
	vo "github.com/walletnames/registrar/internal/domain/payment/valueobjects"
	"github.com/walletnames/registrar/internal/infrastructure/persistence/models"
	"github.com/walletnames/registrar/internal/shared/mapper"
)

func PaymentToModel(p *payment.Payment) (*models.PaymentModel, error) {
	metadata, err := marshalOptional(p.Metadata(), len(p.Metadata()))
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	pricing, err := marshalOptional(p.Pricing(), len(p.Pricing()))
	if err != nil {
		return nil, fmt.Errorf("pricing: %w", err)
	}
	addresses, err := marshalOptional(p.Addresses(), len(p.Addresses()))
	if err != nil {
		return nil, fmt.Errorf("addresses: %w", err)
	}

	model := &models.PaymentModel{
		ID:         p.ID(),
		AccountID:  p.AccountID(),
		PaySource:  p.PaySource().String(),
		ExternID:   p.ExternID(),
		BuyPrice:   p.BuyPrice(),
		Metadata:   metadata,
		Pricing:    pricing,
		Addresses:  addresses,
		ForwardURL: p.ForwardURL(),
		CreatedAt:  p.CreatedAt(),
	}
	model.Events = mapper.MapSlice(p.Events(), eventToModel)
	return model, nil
}

func eventToModel(e *payment.Event) models.PaymentEventModel {
	return models.PaymentEventModel{
		ID:           e.ID(),
		PaymentID:    e.PaymentID(),
		EventID:      e.EventID(),
		PayStatus:    e.PayStatus().String(),
		ExternStatus: e.ExternStatus(),
		ExternTime:   e.ExternTime(),
		CreatedAt:    e.CreatedAt(),
	}
}

func PaymentToDomain(m *models.PaymentModel) (*payment.Payment, error) {
	var details payment.Details
	if err := unmarshalOptional(m.Metadata, &details.Metadata); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	if err := unmarshalOptional(m.Pricing, &details.Pricing); err != nil {
		return nil, fmt.Errorf("pricing: %w", err)
	}
	if err := unmarshalOptional(m.Addresses, &details.Addresses); err != nil {
		return nil, fmt.Errorf("addresses: %w", err)
	}
	details.ForwardURL = m.ForwardURL

	events, err := mapper.MapSliceWithError(m.Events, eventToDomain)
	if err != nil {
		return nil, err
	}

	return payment.ReconstructPayment(
		m.ID,
		m.AccountID,
		vo.PaySource(m.PaySource),
		m.ExternID,
		m.BuyPrice,
		details,
		events,
		m.CreatedAt,
	), nil
}

func eventToDomain(em models.PaymentEventModel) (*payment.Event, error) {
	status := vo.PayStatus(em.PayStatus)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid pay status: %s", em.PayStatus)
	}
	return payment.ReconstructEvent(em.ID, em.PaymentID, em.EventID, status, em.ExternStatus, em.ExternTime, em.CreatedAt), nil
}

func marshalOptional(v any, n int) (datatypes.JSON, error) {
	if n == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func unmarshalOptional(raw datatypes.JSON, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
