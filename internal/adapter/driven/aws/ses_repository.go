package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sesTypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/mail"
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
)

// SESMailRepositoryImpl envia e-mails MIME crus pelo SES.
type SESMailRepositoryImpl struct {
	clients *ClientFactory
}

// NewSESMailRepository creates a MailRepository backed by SES SendRawEmail.
func NewSESMailRepository(clients *ClientFactory) repository.MailRepository {
	return &SESMailRepositoryImpl{clients: clients}
}

// Send renders msg as MIME and sends it to its single recipient.
func (r *SESMailRepositoryImpl) Send(ctx context.Context, msg entity.EmailMessage) (string, error) {
	raw, err := mail.BuildRawMessage(msg)
	if err != nil {
		return "", err
	}

	client, err := r.clients.getServiceClient(ctx, "ses")
	if err != nil {
		return "", err
	}
	sesClient := client.(sesAPI)

	output, err := sesClient.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(msg.From),
		Destinations: []string{msg.To},
		RawMessage:   &sesTypes.RawMessage{Data: raw},
	})
	if err != nil {
		return "", fmt.Errorf("ses send to %s failed: %w", msg.To, err)
	}
	return aws.ToString(output.MessageId), nil
}
