package usecase

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// Estágios reportados na métrica de falhas.
const (
	StageFetch  = "fetch"
	StageBuild  = "build"
	StageExport = "export"
)

// RunResult resume uma execução do relatório.
type RunResult struct {
	Report   entity.Report
	Files    []string
	Delivery entity.DeliveryReport
}

// ReportUseCase handles the monthly cost report job.
type ReportUseCase struct {
	awsRepo     repository.AWSRepository
	exportRepo  repository.ExportRepository
	archiveRepo repository.ArchiveRepository
	metricsRepo repository.MetricsRepository
	notifier    *Notifier
	console     types.ConsoleInterface
	cfg         *types.Config
	now         func() time.Time
}

// NewReportUseCase creates a new report use case. archiveRepo may be nil when no bucket is configured.
func NewReportUseCase(
	cfg *types.Config,
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	mailRepo repository.MailRepository,
	archiveRepo repository.ArchiveRepository,
	metricsRepo repository.MetricsRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		awsRepo:     awsRepo,
		exportRepo:  exportRepo,
		archiveRepo: archiveRepo,
		metricsRepo: metricsRepo,
		notifier:    NewNotifier(mailRepo, console),
		console:     console,
		cfg:         cfg,
		now:         time.Now,
	}
}

// WithClock substitui o relógio usado para calcular a janela do relatório.
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// RunReport fetches last month's costs, writes the report files and emails them to every recipient.
// Send failures are reported in the result and do not fail the run.
func (uc *ReportUseCase) RunReport(ctx context.Context) (*RunResult, error) {
	window := entity.PreviousMonth(uc.now())
	uc.console.LogInfo("Building cost report for %s to %s", window.StartDate(), window.EndDate())

	status := uc.console.Status("Fetching linked account costs...")
	accountID, err := uc.awsRepo.GetAccountID(ctx)
	if err != nil {
		uc.console.LogWarning("Could not resolve account id: %v", err)
	}

	result, err := uc.awsRepo.GetLinkedAccountCosts(ctx, window)
	if err != nil {
		status.Stop()
		return nil, uc.fail(ctx, StageFetch, err)
	}

	status.Update("Building report...")
	report, err := BuildReport(result, uc.cfg.Threshold(), uc.cfg.Order)
	if err != nil {
		status.Stop()
		return nil, uc.fail(ctx, StageBuild, err)
	}
	report.AccountID = accountID

	if uc.cfg.IncludeBudgets && accountID != "" {
		status.Update("Fetching budgets...")
		budgets, err := uc.awsRepo.GetBudgets(ctx, accountID)
		if err != nil {
			uc.console.LogWarning("Could not fetch budgets: %v", err)
		} else {
			report.Budgets = budgets
		}
	}
	status.Stop()

	for _, rec := range report.Records {
		uc.console.LogDebug("%s, %s, %s", rec.AccountID, rec.AccountName, report.FormatCost(rec.Cost))
	}
	uc.console.LogInfo("%d of %d accounts above %d (%d filtered), total %s",
		len(report.Records), report.Fetched, report.Threshold, report.Filtered(), report.FormatCost(report.Total))

	files, err := uc.exportFiles(report)
	if err != nil {
		return nil, uc.fail(ctx, StageExport, err)
	}

	attachments, err := readAttachments(files)
	if err != nil {
		return nil, uc.fail(ctx, StageExport, err)
	}

	msg, err := ComposeMessage(report, uc.cfg.SenderAddress, attachments)
	if err != nil {
		return nil, uc.fail(ctx, StageExport, err)
	}

	delivery := uc.notifier.Notify(ctx, msg, uc.cfg.Recipients)
	if err := delivery.Err(); err != nil {
		uc.console.LogWarning("%d of %d report emails failed: %v", delivery.Failed(), len(delivery.Results), err)
	}

	uc.archive(ctx, report.Window, files)

	uc.metricsRepo.RecordReport(report)
	uc.metricsRepo.RecordDelivery(delivery)
	uc.pushMetrics(ctx)

	uc.console.LogSuccess("Cost report for %s to %s sent to %d of %d recipients",
		window.StartDate(), window.EndDate(), delivery.Sent(), len(delivery.Results))

	return &RunResult{Report: report, Files: files, Delivery: delivery}, nil
}

func (uc *ReportUseCase) exportFiles(report entity.Report) ([]string, error) {
	csvPath, err := uc.exportRepo.ExportToCSV(report, uc.cfg.ReportDir)
	if err != nil {
		return nil, err
	}
	files := []string{csvPath}

	if uc.cfg.WantsFormat(types.FormatJSON) {
		jsonPath, err := uc.exportRepo.ExportToJSON(report, uc.cfg.ReportDir)
		if err != nil {
			return nil, err
		}
		files = append(files, jsonPath)
	}

	if uc.cfg.WantsFormat(types.FormatPDF) {
		pdfPath, err := uc.exportRepo.ExportToPDF(report, uc.cfg.ReportDir)
		if err != nil {
			return nil, err
		}
		files = append(files, pdfPath)
	}

	for _, f := range files {
		uc.console.LogInfo("Report written to %s", f)
	}
	return files, nil
}

func (uc *ReportUseCase) archive(ctx context.Context, window entity.TimeWindow, files []string) {
	if uc.archiveRepo == nil {
		return
	}
	for _, f := range files {
		key := path.Join(window.Start.Format("2006/01"), filepath.Base(f))
		uri, err := uc.archiveRepo.Upload(ctx, key, f)
		if err != nil {
			uc.console.LogWarning("Could not archive %s: %v", filepath.Base(f), err)
			continue
		}
		uc.console.LogInfo("Archived %s", uri)
	}
}

func (uc *ReportUseCase) fail(ctx context.Context, stage string, err error) error {
	uc.metricsRepo.RecordFailure(stage)
	uc.pushMetrics(ctx)
	return fmt.Errorf("%s failed: %w", stage, err)
}

func (uc *ReportUseCase) pushMetrics(ctx context.Context) {
	if err := uc.metricsRepo.Push(ctx); err != nil {
		uc.console.LogWarning("Could not push metrics: %v", err)
	}
}

func readAttachments(files []string) ([]entity.Attachment, error) {
	attachments := make([]entity.Attachment, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("error reading report file %s: %w", f, err)
		}
		attachments = append(attachments, entity.Attachment{
			Filename:    filepath.Base(f),
			ContentType: contentTypeFor(f),
			Data:        data,
		})
	}
	return attachments, nil
}

func contentTypeFor(file string) string {
	switch filepath.Ext(file) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
