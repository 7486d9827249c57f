package email

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/walletnames/registrar/internal/application/purchase/usecases"
	"github.com/walletnames/registrar/internal/shared/logger"
	"github.com/walletnames/registrar/internal/shared/services/markdown"
)

var reviewTemplate = template.Must(template.New("review").Parse(`## Purchase awaiting review

A purchase through **{{.WalletName}}** could not be confirmed by the payment processor and needs manual review.

| Field | Value |
| --- | --- |
| Name | {{.Name}} |
| Account | {{.AccountID}} |
| Buyer key | {{.OwnerKey}} |
| Processor | {{.ProcessorID}} |
| Charge | {{.ExternID}} |
{{- if .ExternStatus}}
| Processor status | {{.ExternStatus}} |
{{- end}}

{{if .ForwardURL}}Charge page: {{.ForwardURL}}{{end}}
`))

// ReviewNotifier emails the wallet operator about purchases in review.
type ReviewNotifier struct {
	mailer   Mailer
	renderer markdown.Renderer
	logger   logger.Interface
}

var _ usecases.ReviewNotifier = (*ReviewNotifier)(nil)

func NewReviewNotifier(mailer Mailer, renderer markdown.Renderer, logger logger.Interface) *ReviewNotifier {
	return &ReviewNotifier{
		mailer:   mailer,
		renderer: renderer,
		logger:   logger,
	}
}

func (n *ReviewNotifier) NotifyReview(ctx context.Context, notice usecases.ReviewNotice) error {
	if notice.NotifyEmail == "" {
		return nil
	}

	var body bytes.Buffer
	if err := reviewTemplate.Execute(&body, notice); err != nil {
		return fmt.Errorf("failed to render review notice: %w", err)
	}
	plain := body.String()

	htmlBody, err := n.renderer.ToHTMLSanitized(plain)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Purchase needs review: %s", notice.Name)
	if err := n.mailer.Send(notice.NotifyEmail, subject, htmlBody, plain); err != nil {
		return err
	}

	n.logger.Infow("review notification sent",
		"extern_id", notice.ExternID,
		"to", notice.NotifyEmail,
	)
	return nil
}
