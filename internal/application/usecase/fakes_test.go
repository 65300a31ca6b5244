package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

type fakeAWSRepository struct {
	result      entity.CostResult
	costErr     error
	accountID   string
	accountErr  error
	budgets     []entity.BudgetInfo
	budgetErr   error
	costCalls   int
	budgetCalls int
}

func (f *fakeAWSRepository) GetLinkedAccountCosts(_ context.Context, window entity.TimeWindow) (entity.CostResult, error) {
	f.costCalls++
	if f.costErr != nil {
		return entity.CostResult{}, f.costErr
	}
	res := f.result
	res.Window = window
	return res, nil
}

func (f *fakeAWSRepository) GetAccountID(context.Context) (string, error) {
	return f.accountID, f.accountErr
}

func (f *fakeAWSRepository) GetBudgets(context.Context, string) ([]entity.BudgetInfo, error) {
	f.budgetCalls++
	return f.budgets, f.budgetErr
}

type fakeMailRepository struct {
	mu   sync.Mutex
	fail map[string]error
	sent []entity.EmailMessage
}

func (f *fakeMailRepository) Send(_ context.Context, msg entity.EmailMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fail[msg.To]; ok {
		return "", err
	}
	f.sent = append(f.sent, msg)
	return fmt.Sprintf("msg-%d", len(f.sent)), nil
}

func (f *fakeMailRepository) recipients() []string {
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.To)
	}
	return out
}

type fakeArchiveRepository struct {
	keys []string
	err  error
}

func (f *fakeArchiveRepository) Upload(_ context.Context, key string, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "s3://bucket/" + key, nil
}

type fakeMetricsRepository struct {
	reports    []entity.Report
	deliveries []entity.DeliveryReport
	failures   []string
	pushes     int
	pushErr    error
}

func (f *fakeMetricsRepository) RecordReport(r entity.Report) {
	f.reports = append(f.reports, r)
}

func (f *fakeMetricsRepository) RecordDelivery(d entity.DeliveryReport) {
	f.deliveries = append(f.deliveries, d)
}

func (f *fakeMetricsRepository) RecordFailure(stage string) {
	f.failures = append(f.failures, stage)
}

func (f *fakeMetricsRepository) Push(context.Context) error {
	f.pushes++
	return f.pushErr
}

// recordingConsole guarda as mensagens para as asserções.
type recordingConsole struct {
	mu       sync.Mutex
	infos    []string
	errors   []string
	warnings []string
}

func (c *recordingConsole) LogDebug(string, ...interface{}) {}

func (c *recordingConsole) LogInfo(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogSuccess(string, ...interface{}) {}

func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogError(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) Status(string) types.StatusHandle { return noopStatus{} }

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}

var errRejected = errors.New("rejected")
