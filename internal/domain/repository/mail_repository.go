package repository

import (
	"context"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// MailRepository sends a single email and returns the transport's message id.
type MailRepository interface {
	Send(ctx context.Context, msg entity.EmailMessage) (string, error)
}
