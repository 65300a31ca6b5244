package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
)

const (
	namespace = "aws_cost_report"
	jobName   = "aws_cost_report"
)

// PushgatewayRepositoryImpl mantém as métricas de uma execução num registry próprio
// e as envia ao Pushgateway no fim do job.
type PushgatewayRepositoryImpl struct {
	url      string
	registry *prometheus.Registry

	totalCost       prometheus.Gauge
	accountsFetched prometheus.Gauge
	accountsKept    prometheus.Gauge
	emailsSent      prometheus.Gauge
	emailsFailed    prometheus.Gauge
	lastSuccess     prometheus.Gauge
	failures        *prometheus.CounterVec
}

// NewPushgatewayRepository creates a metrics sink that pushes to url. An empty url records
// metrics locally and makes Push a no-op.
func NewPushgatewayRepository(url string) *PushgatewayRepositoryImpl {
	r := &PushgatewayRepositoryImpl{
		url:      url,
		registry: prometheus.NewRegistry(),
		totalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_cost_dollars",
			Help:      "Unblended cost of all linked accounts for the reported month",
		}),
		accountsFetched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "accounts_fetched",
			Help:      "Linked accounts returned by Cost Explorer",
		}),
		accountsKept: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "accounts_reported",
			Help:      "Linked accounts above the cost threshold",
		}),
		emailsSent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "email",
			Name:      "sent",
			Help:      "Report emails accepted by the mail transport",
		}),
		emailsFailed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "email",
			Name:      "failed",
			Help:      "Report emails rejected by the mail transport",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that produced a report",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Runs aborted, by stage",
		}, []string{"stage"}),
	}

	r.registry.MustRegister(
		r.totalCost, r.accountsFetched, r.accountsKept,
		r.emailsSent, r.emailsFailed, r.lastSuccess, r.failures,
	)
	return r
}

var _ repository.MetricsRepository = (*PushgatewayRepositoryImpl)(nil)

// RecordReport registra totais do relatório.
func (r *PushgatewayRepositoryImpl) RecordReport(report entity.Report) {
	total, _ := report.Total.Float64()
	r.totalCost.Set(total)
	r.accountsFetched.Set(float64(report.Fetched))
	r.accountsKept.Set(float64(len(report.Records)))
	r.lastSuccess.SetToCurrentTime()
}

// RecordDelivery registra o resultado dos envios.
func (r *PushgatewayRepositoryImpl) RecordDelivery(delivery entity.DeliveryReport) {
	r.emailsSent.Set(float64(delivery.Sent()))
	r.emailsFailed.Set(float64(delivery.Failed()))
}

// RecordFailure counts an aborted run at the given stage.
func (r *PushgatewayRepositoryImpl) RecordFailure(stage string) {
	r.failures.WithLabelValues(stage).Inc()
}

// Push envia o registry ao Pushgateway, substituindo o grupo do job.
func (r *PushgatewayRepositoryImpl) Push(ctx context.Context) error {
	if r.url == "" {
		return nil
	}
	if err := push.New(r.url, jobName).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("error pushing metrics to %s: %w", r.url, err)
	}
	return nil
}
