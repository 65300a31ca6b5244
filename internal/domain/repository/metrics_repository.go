package repository

import (
	"context"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// MetricsRepository records the outcome of a run.
type MetricsRepository interface {
	RecordReport(report entity.Report)
	RecordDelivery(delivery entity.DeliveryReport)
	RecordFailure(stage string)
	Push(ctx context.Context) error
}
