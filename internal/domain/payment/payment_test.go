package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/walletnames/registrar/internal/domain/payment/valueobjects"
)

func TestNewFreePayment(t *testing.T) {
	p, err := NewFreePayment(3, "1700000000000", decimal.Zero)
	require.NoError(t, err)

	assert.True(t, p.PaySource().IsFree())
	events := p.Events()
	require.Len(t, events, 1)
	assert.Equal(t, InitialEventID, events[0].EventID())
	assert.Equal(t, vo.PayStatusSuccess, events[0].PayStatus())

	status, ok := p.LatestStatus()
	assert.True(t, ok)
	assert.Equal(t, vo.PayStatusSuccess, status)
}

func TestNewPaymentTreatsEmptyOptionalsAsAbsent(t *testing.T) {
	empty := ""
	p, err := NewPayment(1, vo.NewPaySource("coinbase"), "ABC", decimal.NewFromInt(5), Details{
		Metadata:   map[string]any{},
		ForwardURL: &empty,
	})
	require.NoError(t, err)
	assert.Nil(t, p.Metadata())
	assert.Nil(t, p.ForwardURL())

	_, ok := p.LatestStatus()
	assert.False(t, ok)
}

func TestNewPaymentValidation(t *testing.T) {
	_, err := NewPayment(0, vo.PaySourceFree, "x", decimal.Zero, Details{})
	assert.Error(t, err)
	_, err = NewPayment(1, "", "x", decimal.Zero, Details{})
	assert.Error(t, err)
	_, err = NewPayment(1, vo.PaySourceFree, "", decimal.Zero, Details{})
	assert.Error(t, err)
}

func TestAppendEventDefaultsAndSetID(t *testing.T) {
	p, err := NewPayment(1, vo.NewPaySource("coinbase"), "ABC", decimal.NewFromInt(5), Details{})
	require.NoError(t, err)

	require.NoError(t, p.AppendEvent("", vo.PayStatusPending, nil, nil))
	assert.Error(t, p.AppendEvent("1", vo.PayStatus("paid"), nil, nil))

	p.SetID(42)
	events := p.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "0", events[0].EventID())
	assert.Equal(t, uint(42), events[0].PaymentID())
}
