package email

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/walletnames/registrar/internal/application/purchase/usecases"
	"github.com/walletnames/registrar/internal/shared/logger"
	"github.com/walletnames/registrar/internal/shared/services/markdown"
)

type capturedMail struct {
	from string
	to   []string
	raw  string
}

func capturingSender(out *[]capturedMail, failWith error) gomail.SendFunc {
	return func(from string, to []string, msg io.WriterTo) error {
		if failWith != nil {
			return failWith
		}
		var buf bytes.Buffer
		if _, err := msg.WriteTo(&buf); err != nil {
			return err
		}
		*out = append(*out, capturedMail{from: from, to: to, raw: buf.String()})
		return nil
	}
}

func reviewNotice() usecases.ReviewNotice {
	return usecases.ReviewNotice{
		WalletName:   "Acme",
		NotifyEmail:  "ops@acme.example",
		Name:         "bob@good.domain",
		OwnerKey:     "pk1",
		AccountID:    12,
		ExternID:     "CHG1",
		ProcessorID:  "coinbase",
		ExternStatus: "UNRESOLVED",
		ForwardURL:   "https://pay.example/CHG1",
	}
}

func TestReviewNotifier_Sends(t *testing.T) {
	var sent []capturedMail
	mailer := NewMailerWithSender(SMTPConfig{FromAddress: "noreply@registrar.local", FromName: "Registrar"}, capturingSender(&sent, nil))
	n := NewReviewNotifier(mailer, markdown.NewRenderer(), logger.NewNop())

	require.NoError(t, n.NotifyReview(context.Background(), reviewNotice()))
	require.Len(t, sent, 1)

	assert.Equal(t, "noreply@registrar.local", sent[0].from)
	assert.Equal(t, []string{"ops@acme.example"}, sent[0].to)
	assert.Contains(t, sent[0].raw, "Subject: Purchase needs review: bob@good.domain")
	assert.Contains(t, sent[0].raw, "CHG1")
	assert.Contains(t, sent[0].raw, "UNRESOLVED")
	assert.Contains(t, sent[0].raw, "text/html")
}

func TestReviewNotifier_NoRecipient(t *testing.T) {
	var sent []capturedMail
	n := NewReviewNotifier(NewMailerWithSender(SMTPConfig{FromAddress: "a@b.c"}, capturingSender(&sent, nil)), markdown.NewRenderer(), logger.NewNop())

	notice := reviewNotice()
	notice.NotifyEmail = ""
	require.NoError(t, n.NotifyReview(context.Background(), notice))
	assert.Empty(t, sent)
}

func TestReviewNotifier_DeliveryFailure(t *testing.T) {
	var sent []capturedMail
	n := NewReviewNotifier(NewMailerWithSender(SMTPConfig{FromAddress: "a@b.c"}, capturingSender(&sent, errors.New("connection refused"))), markdown.NewRenderer(), logger.NewNop())

	err := n.NotifyReview(context.Background(), reviewNotice())
	assert.ErrorContains(t, err, "connection refused")
}
