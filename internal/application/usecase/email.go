package usecase

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

const (
	reportSentence = "Attached is the monthly AWS Cost report"
	subjectFormat  = "AWS Cost report for %s to %s"
)

var htmlBody = template.Must(template.New("report").Parse(`<html>
<head></head>
<body>
<p>{{.Sentence}}</p>
<p>Period: {{.Start}} to {{.End}}</p>
<p>Total cost: {{.Total}}</p>
<p>Accounts above {{.Threshold}}: {{.Kept}} of {{.Fetched}}</p>
{{- if .Budgets}}
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Budget</th><th>Limit</th><th>Actual</th><th>Forecast</th><th>Used</th></tr>
{{- range .Budgets}}
<tr><td>{{.Name}}</td><td>{{printf "%.2f" .Limit}}</td><td>{{printf "%.2f" .Actual}}</td><td>{{printf "%.2f" .Forecast}}</td><td>{{printf "%.1f%%" .UsedPercent}}</td></tr>
{{- end}}
</table>
{{- end}}
</body>
</html>
`))

// ReportSubject returns the email subject for a report window.
func ReportSubject(window entity.TimeWindow) string {
	return fmt.Sprintf(subjectFormat, window.StartDate(), window.EndDate())
}

// ComposeMessage monta o e-mail do relatório, ainda sem destinatário.
func ComposeMessage(report entity.Report, from string, attachments []entity.Attachment) (entity.EmailMessage, error) {
	var buf bytes.Buffer
	err := htmlBody.Execute(&buf, struct {
		Sentence  string
		Start     string
		End       string
		Total     string
		Threshold int64
		Kept      int
		Fetched   int
		Budgets   []entity.BudgetInfo
	}{
		Sentence:  reportSentence,
		Start:     report.Window.StartDate(),
		End:       report.Window.EndDate(),
		Total:     report.FormatCost(report.Total),
		Threshold: report.Threshold,
		Kept:      len(report.Records),
		Fetched:   report.Fetched,
		Budgets:   report.Budgets,
	})
	if err != nil {
		return entity.EmailMessage{}, fmt.Errorf("error rendering email body: %w", err)
	}

	return entity.EmailMessage{
		From:        from,
		Subject:     ReportSubject(report.Window),
		TextBody:    reportSentence,
		HTMLBody:    buf.String(),
		Attachments: attachments,
	}, nil
}
