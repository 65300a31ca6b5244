package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	netmail "net/mail"

	"github.com/sendgrid/rest"
	sendgrid "github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
)

type sendClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridRepositoryImpl envia o relatório pela API v3 do SendGrid.
type SendGridRepositoryImpl struct {
	client sendClient
}

// NewSendGridRepository cria um MailRepository baseado no SendGrid.
func NewSendGridRepository(apiKey string) repository.MailRepository {
	return &SendGridRepositoryImpl{client: sendgrid.NewSendClient(apiKey)}
}

// Send delivers msg and returns the X-Message-Id header, when present.
func (r *SendGridRepositoryImpl) Send(ctx context.Context, msg entity.EmailMessage) (string, error) {
	from, err := netmail.ParseAddress(msg.From)
	if err != nil {
		return "", fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}

	m := sgmail.NewSingleEmail(
		sgmail.NewEmail(from.Name, from.Address),
		msg.Subject,
		sgmail.NewEmail("", msg.To),
		msg.TextBody,
		msg.HTMLBody,
	)

	enable := false
	m.SetTrackingSettings(&sgmail.TrackingSettings{SubscriptionTracking: &sgmail.SubscriptionTrackingSetting{Enable: &enable}})

	for _, att := range msg.Attachments {
		a := sgmail.NewAttachment()
		a.SetContent(base64.StdEncoding.EncodeToString(att.Data))
		a.SetFilename(att.Filename)
		a.SetDisposition("attachment")
		if att.ContentType != "" {
			a.SetType(att.ContentType)
		}
		m.AddAttachment(a)
	}

	response, err := r.client.SendWithContext(ctx, m)
	if err != nil {
		return "", fmt.Errorf("sendgrid request failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("sendgrid rejected message with status %d: %s", response.StatusCode, response.Body)
	}

	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}
