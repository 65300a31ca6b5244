package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

type useCaseFixture struct {
	cfg      *types.Config
	aws      *fakeAWSRepository
	mail     *fakeMailRepository
	archive  *fakeArchiveRepository
	metrics  *fakeMetricsRepository
	console  *recordingConsole
	useCase  *ReportUseCase
	reportAt time.Time
}

func newFixture(t *testing.T) *useCaseFixture {
	t.Helper()

	threshold := int64(10)
	f := &useCaseFixture{
		cfg: &types.Config{
			SenderAddress: "sender@x.com",
			Recipients:    []string{"a@x.com", "bad@x.com", "c@x.com"},
			CostThreshold: &threshold,
			ReportDir:     t.TempDir(),
			Order:         types.OrderByCost,
		},
		aws: &fakeAWSRepository{
			accountID: "999999999999",
			result: entity.CostResult{
				Groups: []entity.CostGroup{
					{AccountID: "111111111111", Amount: "120.499", Unit: "USD"},
					{AccountID: "222222222222", Amount: "3.25", Unit: "USD"},
					{AccountID: "333333333333", Amount: "15", Unit: "USD"},
				},
				AccountNames: map[string]string{
					"111111111111": "prod",
					"222222222222": "sandbox",
					"333333333333": "shared, services",
				},
			},
		},
		mail:     &fakeMailRepository{fail: map[string]error{"bad@x.com": errRejected}},
		archive:  &fakeArchiveRepository{},
		metrics:  &fakeMetricsRepository{},
		console:  &recordingConsole{},
		reportAt: time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC),
	}
	f.useCase = f.build()
	return f
}

func (f *useCaseFixture) build() *ReportUseCase {
	return NewReportUseCase(f.cfg, f.aws, export.NewExportRepository(), f.mail, f.archive, f.metrics, f.console).
		WithClock(func() time.Time { return f.reportAt })
}

func TestRunReport_EndToEnd(t *testing.T) {
	f := newFixture(t)

	result, err := f.useCase.RunReport(context.Background())
	require.NoError(t, err)

	report := result.Report
	assert.Equal(t, "2024-02-01", report.Window.StartDate())
	assert.Equal(t, "2024-03-01", report.Window.EndDate())
	assert.Equal(t, "999999999999", report.AccountID)
	assert.Equal(t, "138.75", report.Total.StringFixed(2))
	assert.Equal(t, []string{"111111111111", "333333333333"}, recordIDs(report.Records))
	assert.Contains(t, f.console.infos, "2 of 3 accounts above 10 (1 filtered), total 138.75")

	require.Len(t, result.Files, 1)
	csvPath := filepath.Join(f.cfg.ReportDir, "cost-report-2024-02-01-2024-03-01.csv")
	assert.Equal(t, csvPath, result.Files[0])
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "ACCOUNT ID,ACCOUNT NAME,COST\n"+
		"111111111111,prod,120.50\n"+
		"333333333333,\"shared, services\",15.00\n"+
		",TOTAL,138.75\n", string(data))

	// best effort: o destinatário rejeitado não impede os demais
	assert.Equal(t, []string{"a@x.com", "c@x.com"}, f.mail.recipients())
	assert.Equal(t, 2, result.Delivery.Sent())
	assert.Equal(t, 1, result.Delivery.Failed())

	sent := f.mail.sent[0]
	assert.Equal(t, "sender@x.com", sent.From)
	assert.Equal(t, "AWS Cost report for 2024-02-01 to 2024-03-01", sent.Subject)
	assert.Equal(t, "Attached is the monthly AWS Cost report", sent.TextBody)
	assert.Contains(t, sent.HTMLBody, "<p>Attached is the monthly AWS Cost report</p>")
	assert.Contains(t, sent.HTMLBody, "138.75")
	require.Len(t, sent.Attachments, 1)
	assert.Equal(t, "cost-report-2024-02-01-2024-03-01.csv", sent.Attachments[0].Filename)
	assert.Equal(t, "text/csv", sent.Attachments[0].ContentType)
	assert.Equal(t, data, sent.Attachments[0].Data)

	assert.Equal(t, []string{"2024/02/cost-report-2024-02-01-2024-03-01.csv"}, f.archive.keys)
	require.Len(t, f.metrics.reports, 1)
	require.Len(t, f.metrics.deliveries, 1)
	assert.Empty(t, f.metrics.failures)
	assert.Equal(t, 1, f.metrics.pushes)
	assert.Zero(t, f.aws.budgetCalls)
}

func TestRunReport_FetchErrorSendsNothing(t *testing.T) {
	f := newFixture(t)
	f.aws.costErr = errors.New("AccessDeniedException")

	result, err := f.useCase.RunReport(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "AccessDeniedException")

	assert.Empty(t, f.mail.sent)
	assert.Empty(t, f.archive.keys)
	assert.Equal(t, []string{StageFetch}, f.metrics.failures)
	assert.Equal(t, 1, f.metrics.pushes)

	entries, err := os.ReadDir(f.cfg.ReportDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunReport_MissingNameWritesNoFile(t *testing.T) {
	f := newFixture(t)
	delete(f.aws.result.AccountNames, "333333333333")

	_, err := f.useCase.RunReport(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrAccountNameNotFound)
	assert.Empty(t, f.mail.sent)
	assert.Equal(t, []string{StageBuild}, f.metrics.failures)

	entries, err := os.ReadDir(f.cfg.ReportDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunReport_AllSendsFailStillSucceeds(t *testing.T) {
	f := newFixture(t)
	f.cfg.Recipients = []string{"bad@x.com"}

	result, err := f.useCase.RunReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Delivery.Sent())
	assert.Error(t, result.Delivery.Err())
	assert.NotEmpty(t, f.console.warnings)
}

func TestRunReport_ExtraFormatsAndBudgets(t *testing.T) {
	f := newFixture(t)
	f.cfg.Formats = []string{types.FormatCSV, types.FormatJSON, types.FormatPDF}
	f.cfg.IncludeBudgets = true
	f.aws.budgets = []entity.BudgetInfo{{Name: "monthly-total", Limit: 1000, Actual: 850, Forecast: 990, Unit: "USD"}}

	result, err := f.useCase.RunReport(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, 1, f.aws.budgetCalls)
	assert.Equal(t, f.aws.budgets, result.Report.Budgets)

	sent := f.mail.sent[0]
	require.Len(t, sent.Attachments, 3)
	assert.Equal(t, "text/csv", sent.Attachments[0].ContentType)
	assert.Equal(t, "application/json", sent.Attachments[1].ContentType)
	assert.Equal(t, "application/pdf", sent.Attachments[2].ContentType)
	assert.True(t, strings.HasSuffix(sent.Attachments[2].Filename, ".pdf"))
	assert.Contains(t, sent.HTMLBody, "monthly-total")
	assert.Contains(t, sent.HTMLBody, "85.0%")
	assert.Len(t, f.archive.keys, 3)
}

func TestRunReport_OptionalSinkFailuresAreWarnings(t *testing.T) {
	f := newFixture(t)
	f.cfg.IncludeBudgets = true
	f.aws.budgetErr = errors.New("budgets denied")
	f.archive.err = errors.New("bucket missing")
	f.metrics.pushErr = errors.New("gateway down")

	_, err := f.useCase.RunReport(context.Background())
	require.NoError(t, err)

	joined := strings.Join(f.console.warnings, "\n")
	assert.Contains(t, joined, "budgets denied")
	assert.Contains(t, joined, "bucket missing")
	assert.Contains(t, joined, "gateway down")
}

func TestRunReport_UnknownAccountIDSkipsBudgets(t *testing.T) {
	f := newFixture(t)
	f.cfg.IncludeBudgets = true
	f.aws.accountID = ""
	f.aws.accountErr = errors.New("sts unavailable")

	result, err := f.useCase.RunReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Report.AccountID)
	assert.Zero(t, f.aws.budgetCalls)
}

func TestRunReport_WithoutArchive(t *testing.T) {
	f := newFixture(t)
	uc := NewReportUseCase(f.cfg, f.aws, export.NewExportRepository(), f.mail, nil, f.metrics, f.console).
		WithClock(func() time.Time { return f.reportAt })

	_, err := uc.RunReport(context.Background())
	require.NoError(t, err)
}
