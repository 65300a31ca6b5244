package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// Notifier envia o mesmo e-mail para cada destinatário, um de cada vez.
type Notifier struct {
	mailRepo repository.MailRepository
	console  types.ConsoleInterface
}

// NewNotifier creates a new notifier.
func NewNotifier(mailRepo repository.MailRepository, console types.ConsoleInterface) *Notifier {
	return &Notifier{
		mailRepo: mailRepo,
		console:  console,
	}
}

// Notify sends msg to every recipient in list order. A failed send is recorded and logged;
// the remaining recipients are still attempted.
func (n *Notifier) Notify(ctx context.Context, msg entity.EmailMessage, recipients []string) entity.DeliveryReport {
	delivery := entity.DeliveryReport{Results: make([]entity.DeliveryResult, 0, len(recipients))}

	for _, recipient := range recipients {
		out := msg
		out.To = recipient

		n.console.LogInfo("Sending report from %s to %s", msg.From, recipient)
		messageID, err := n.mailRepo.Send(ctx, out)
		if err != nil {
			n.console.LogError("Failed to send report to %s: %s", recipient, describeError(err))
			delivery.Results = append(delivery.Results, entity.DeliveryResult{Recipient: recipient, Err: err})
			continue
		}

		n.console.LogSuccess("Email sent to %s! Message ID: %s", recipient, messageID)
		delivery.Results = append(delivery.Results, entity.DeliveryResult{Recipient: recipient, MessageID: messageID})
	}

	return delivery
}

// describeError extrai a mensagem do serviço quando o erro vem da AWS.
func describeError(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err.Error()
}
