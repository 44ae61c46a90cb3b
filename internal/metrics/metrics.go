package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ReasonDeadlineExceeded = "deadline_exceeded"
	ReasonCanceled         = "canceled"
	ReasonDB               = "db"
	ReasonUnknown          = "unknown"
)

// Metrics holds the worker's collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	jobRuns        *prometheus.CounterVec
	jobDuration    *prometheus.HistogramVec
	jobErrors      *prometheus.CounterVec
	jobSkipped     *prometheus.CounterVec
	jobRunning     *prometheus.GaugeVec
	itemsProcessed *prometheus.CounterVec
	itemsFailed    *prometheus.CounterVec
	breakerState   *prometheus.GaugeVec
	panelRequests  *prometheus.CounterVec
}

func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamehost_job_runs_total",
			Help: "Finished job runs by job and status.",
		}, []string{"job", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gamehost_job_duration_seconds",
			Help:    "Job run duration.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"job"}),
		jobErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamehost_job_errors_total",
			Help: "Failed job runs by low-cardinality reason.",
		}, []string{"job", "reason"}),
		jobSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamehost_job_skipped_total",
			Help: "Invocations skipped because the same job was already running.",
		}, []string{"job"}),
		jobRunning: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gamehost_job_running",
			Help: "1 while a job is executing.",
		}, []string{"job"}),
		itemsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamehost_job_items_processed_total",
			Help: "Items processed by jobs.",
		}, []string{"job"}),
		itemsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamehost_job_items_failed_total",
			Help: "Items that failed inside otherwise running jobs.",
		}, []string{"job"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gamehost_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open).",
		}, []string{"name"}),
		panelRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamehost_panel_requests_total",
			Help: "Panel API calls by result.",
		}, []string{"name", "result"}),
	}

	registerer.MustRegister(
		m.jobRuns,
		m.jobDuration,
		m.jobErrors,
		m.jobSkipped,
		m.jobRunning,
		m.itemsProcessed,
		m.itemsFailed,
		m.breakerState,
		m.panelRequests,
	)
	return m
}

func (m *Metrics) JobStarted(job string) {
	if m == nil {
		return
	}
	m.jobRunning.WithLabelValues(job).Set(1)
}

func (m *Metrics) JobFinished(job, status string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.jobRunning.WithLabelValues(job).Set(0)
	m.jobRuns.WithLabelValues(job, status).Inc()
	m.jobDuration.WithLabelValues(job).Observe(elapsed.Seconds())
	if err != nil {
		m.jobErrors.WithLabelValues(job, ClassifyError(err)).Inc()
	}
}

func (m *Metrics) JobSkipped(job string) {
	if m == nil {
		return
	}
	m.jobSkipped.WithLabelValues(job).Inc()
}

func (m *Metrics) ItemProcessed(job string) {
	if m == nil {
		return
	}
	m.itemsProcessed.WithLabelValues(job).Inc()
}

func (m *Metrics) ItemFailed(job string) {
	if m == nil {
		return
	}
	m.itemsFailed.WithLabelValues(job).Inc()
}

func (m *Metrics) BreakerState(name string, state float64) {
	if m == nil {
		return
	}
	m.breakerState.WithLabelValues(name).Set(state)
}

func (m *Metrics) PanelRequest(name, result string) {
	if m == nil {
		return
	}
	m.panelRequests.WithLabelValues(name, result).Inc()
}

// ClassifyError maps an error to a reason label.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ReasonDB
	}
	return ReasonUnknown
}
