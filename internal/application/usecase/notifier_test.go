package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

func TestNotify_ContinuesAfterFailure(t *testing.T) {
	mailRepo := &fakeMailRepository{fail: map[string]error{"bad@x.com": errRejected}}
	console := &recordingConsole{}
	notifier := NewNotifier(mailRepo, console)

	msg := entity.EmailMessage{From: "sender@x.com", Subject: "subject"}
	delivery := notifier.Notify(context.Background(), msg, []string{"a@x.com", "bad@x.com", "c@x.com"})

	assert.Equal(t, []string{"a@x.com", "c@x.com"}, mailRepo.recipients())
	require.Len(t, delivery.Results, 3)
	assert.Equal(t, "a@x.com", delivery.Results[0].Recipient)
	assert.Equal(t, "msg-1", delivery.Results[0].MessageID)
	assert.ErrorIs(t, delivery.Results[1].Err, errRejected)
	assert.Equal(t, "msg-2", delivery.Results[2].MessageID)
	assert.Equal(t, 2, delivery.Sent())
	assert.Equal(t, 1, delivery.Failed())
	require.Len(t, console.errors, 1)
	assert.Contains(t, console.errors[0], "bad@x.com")
}

func TestNotify_SetsRecipientOnEachMessage(t *testing.T) {
	mailRepo := &fakeMailRepository{}
	notifier := NewNotifier(mailRepo, &recordingConsole{})

	msg := entity.EmailMessage{
		From:        "sender@x.com",
		Subject:     "AWS Cost report for 2024-02-01 to 2024-03-01",
		Attachments: []entity.Attachment{{Filename: "cost-report.csv", Data: []byte("x")}},
	}
	delivery := notifier.Notify(context.Background(), msg, []string{"a@x.com", "a@x.com"})

	require.NoError(t, delivery.Err())
	require.Len(t, mailRepo.sent, 2)
	for _, sent := range mailRepo.sent {
		assert.Equal(t, "a@x.com", sent.To)
		assert.Equal(t, msg.Subject, sent.Subject)
		assert.Equal(t, msg.Attachments, sent.Attachments)
	}
}

func TestNotify_LogsServiceErrorMessage(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "MessageRejected", Message: "Email address is not verified."}
	mailRepo := &fakeMailRepository{fail: map[string]error{
		"a@x.com": fmt.Errorf("error sending email: %w", apiErr),
	}}
	console := &recordingConsole{}

	delivery := NewNotifier(mailRepo, console).Notify(context.Background(), entity.EmailMessage{}, []string{"a@x.com"})

	assert.Equal(t, 1, delivery.Failed())
	require.Len(t, console.errors, 1)
	assert.Contains(t, console.errors[0], "MessageRejected: Email address is not verified.")
}

func TestNotify_NoRecipients(t *testing.T) {
	delivery := NewNotifier(&fakeMailRepository{}, &recordingConsole{}).Notify(context.Background(), entity.EmailMessage{}, nil)
	assert.Empty(t, delivery.Results)
	assert.NoError(t, delivery.Err())
}
