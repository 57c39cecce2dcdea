package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors on a private
// registry, so tests can construct as many instances as they like without
// duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry

	WalletTransactions   *prometheus.CounterVec
	DrawerTransactions   *prometheus.CounterVec
	AllocationsTotal     *prometheus.CounterVec
	ReconciliationsTotal *prometheus.CounterVec
	AlertsTotal          *prometheus.CounterVec
	SweepRuns            *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
}

// NewMetrics builds the registry and registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		WalletTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bcl",
			Name:      "wallet_transactions_total",
			Help:      "Pool-level wallet transactions by type and terminal status.",
		}, []string{"type", "status"}),
		DrawerTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bcl",
			Name:      "drawer_transactions_total",
			Help:      "Teller drawer cash movements by type.",
		}, []string{"type"}),
		AllocationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bcl",
			Name:      "float_allocations_total",
			Help:      "Float allocation state transitions.",
		}, []string{"status"}),
		ReconciliationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bcl",
			Name:      "reconciliations_total",
			Help:      "Reconciliation runs by variance classification.",
		}, []string{"result"}),
		AlertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bcl",
			Name:      "security_alerts_total",
			Help:      "Security alerts raised by type and severity.",
		}, []string{"type", "severity"}),
		SweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bcl",
			Name:      "sweep_runs_total",
			Help:      "Background sweep executions by job and outcome.",
		}, []string{"job", "outcome"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bcl",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.WalletTransactions,
		m.DrawerTransactions,
		m.AllocationsTotal,
		m.ReconciliationsTotal,
		m.AlertsTotal,
		m.SweepRuns,
		m.HTTPDuration,
	)

	return m
}

// Handler serves the /metrics scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
