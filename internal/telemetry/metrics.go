// Package telemetry holds the Prometheus collectors of the payments service.
package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics groups every collector registered by the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	TransfersTotal             *prometheus.CounterVec
	TransferAmount             *prometheus.HistogramVec
	TransferProcessingDuration prometheus.Histogram
	LockWaitDuration           *prometheus.HistogramVec

	NotificationsTotal *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payments_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		TransfersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_transfers_total",
				Help: "Total number of transfer attempts",
			},
			[]string{"outcome"}, // success, account_not_found, insufficient_funds
		),
		TransferAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payments_transfer_amount",
				Help:    "Transfer amount distribution",
				Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000, 100000},
			},
			[]string{"outcome"},
		),
		TransferProcessingDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "payments_transfer_processing_duration_seconds",
				Help:    "Time to process a transfer",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		LockWaitDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payments_transfer_lock_wait_seconds",
				Help:    "Time spent waiting for the transfer critical section",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
			[]string{"mode"},
		),
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_notifications_total",
				Help: "Notification deliveries by sink and result",
			},
			[]string{"sink", "result"}, // delivered, failed, dropped
		),
	}
}

func (m *Metrics) RecordTransfer(outcome string, amount decimal.Decimal) {
	m.TransfersTotal.WithLabelValues(outcome).Inc()
	m.TransferAmount.WithLabelValues(outcome).Observe(amount.InexactFloat64())
}

func (m *Metrics) RecordOperationDuration(_ string, d time.Duration) {
	m.TransferProcessingDuration.Observe(d.Seconds())
}

func (m *Metrics) RecordLockWait(mode string, d time.Duration) {
	m.LockWaitDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (m *Metrics) RecordNotification(sink, result string) {
	m.NotificationsTotal.WithLabelValues(sink, result).Inc()
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
