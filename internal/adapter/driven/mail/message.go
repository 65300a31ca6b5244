package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	netmail "net/mail"
	"net/textproto"
	"time"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

const (
	charset         = "utf-8"
	base64LineWidth = 76
)

// BuildRawMessage renderiza a mensagem como MIME multipart/mixed: um bloco multipart/alternative
// (texto + HTML) seguido de um anexo base64 por arquivo.
func BuildRawMessage(msg entity.EmailMessage) ([]byte, error) {
	if msg.From == "" || msg.To == "" {
		return nil, fmt.Errorf("message requires both sender and recipient")
	}

	from, err := netmail.ParseAddress(msg.From)
	if err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	fromHeader := from.Address
	if from.Name != "" {
		fromHeader = from.String()
	}

	var buf bytes.Buffer
	mixed := multipart.NewWriter(&buf)

	headers := []struct{ key, value string }{
		{"From", fromHeader},
		{"To", msg.To},
		{"Subject", mime.QEncoding.Encode(charset, msg.Subject)},
		{"Date", time.Now().Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", mime.FormatMediaType("multipart/mixed", map[string]string{"boundary": mixed.Boundary()})},
	}
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h.key, h.value)
	}
	buf.WriteString("\r\n")

	body, boundary, err := buildAlternative(msg.TextBody, msg.HTMLBody)
	if err != nil {
		return nil, err
	}
	altPart, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {mime.FormatMediaType("multipart/alternative", map[string]string{"boundary": boundary})},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating body part: %w", err)
	}
	if _, err := altPart.Write(body); err != nil {
		return nil, fmt.Errorf("error writing body part: %w", err)
	}

	for _, att := range msg.Attachments {
		if err := writeAttachment(mixed, att); err != nil {
			return nil, err
		}
	}

	if err := mixed.Close(); err != nil {
		return nil, fmt.Errorf("error closing message: %w", err)
	}
	return buf.Bytes(), nil
}

func buildAlternative(text, html string) ([]byte, string, error) {
	var buf bytes.Buffer
	alt := multipart.NewWriter(&buf)

	parts := []struct{ mediaType, content string }{
		{"text/plain", text},
		{"text/html", html},
	}
	for _, p := range parts {
		w, err := alt.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {mime.FormatMediaType(p.mediaType, map[string]string{"charset": charset})},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, "", fmt.Errorf("error creating %s part: %w", p.mediaType, err)
		}
		qp := quotedprintable.NewWriter(w)
		if _, err := qp.Write([]byte(p.content)); err != nil {
			return nil, "", fmt.Errorf("error writing %s part: %w", p.mediaType, err)
		}
		if err := qp.Close(); err != nil {
			return nil, "", fmt.Errorf("error writing %s part: %w", p.mediaType, err)
		}
	}

	if err := alt.Close(); err != nil {
		return nil, "", fmt.Errorf("error closing alternative part: %w", err)
	}
	return buf.Bytes(), alt.Boundary(), nil
}

func writeAttachment(w *multipart.Writer, att entity.Attachment) error {
	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {mime.FormatMediaType(contentType, map[string]string{"name": att.Filename})},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": att.Filename})},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return fmt.Errorf("error creating attachment %s: %w", att.Filename, err)
	}

	encoded := base64.StdEncoding.EncodeToString(att.Data)
	for len(encoded) > 0 {
		n := base64LineWidth
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := fmt.Fprintf(part, "%s\r\n", encoded[:n]); err != nil {
			return fmt.Errorf("error writing attachment %s: %w", att.Filename, err)
		}
		encoded = encoded[n:]
	}
	return nil
}
