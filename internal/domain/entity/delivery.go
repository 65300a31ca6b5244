package entity

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Attachment é um arquivo anexado ao e-mail do relatório.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EmailMessage is a single-recipient email ready to be rendered by a mail transport.
type EmailMessage struct {
	From        string
	To          string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

// DeliveryResult registra o resultado do envio para um destinatário.
type DeliveryResult struct {
	Recipient string `json:"recipient"`
	MessageID string `json:"message_id,omitempty"`
	Err       error  `json:"-"`
}

// OK reports whether the message was accepted by the transport.
func (r DeliveryResult) OK() bool { return r.Err == nil }

// DeliveryReport is the per-recipient status list of a notification run.
type DeliveryReport struct {
	Results []DeliveryResult `json:"results"`
}

// Sent returns the number of accepted messages.
func (d DeliveryReport) Sent() int {
	n := 0
	for _, r := range d.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of rejected messages.
func (d DeliveryReport) Failed() int {
	return len(d.Results) - d.Sent()
}

// Err agrega as falhas de envio; nil quando todos os envios tiveram sucesso.
func (d DeliveryReport) Err() error {
	var result *multierror.Error
	for _, r := range d.Results {
		if r.Err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", r.Recipient, r.Err))
		}
	}
	return result.ErrorOrNil()
}
