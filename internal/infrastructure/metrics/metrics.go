package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"congreso/internal/ports/output"
)

const namespace = "congreso"

var _ output.Metrics = (*Metrics)(nil)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	EnrollmentsTotal        *prometheus.CounterVec
	WaitlistPromotionsTotal prometheus.Counter
	AttendanceRecordedTotal prometheus.Counter
	RejectionsTotal         *prometheus.CounterVec

	logger *zap.Logger
}

// New creates and registers all metrics with the default registry
func New(logger *zap.Logger) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, logger)
}

// NewWithRegistry creates and registers all metrics with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	factory := promauto.With(registerer)
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		EnrollmentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "enrollments_total",
				Help:      "Workshop enrollments by resolved status",
			},
			[]string{"status"},
		),
		WaitlistPromotionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "waitlist_promotions_total",
				Help:      "Waitlisted enrollments promoted to a seat",
			},
		),
		AttendanceRecordedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "attendance_recorded_total",
				Help:      "Attendance marks recorded",
			},
		),
		RejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rejections_total",
				Help:      "Business rule rejections by operation and code",
			},
			[]string{"operation", "code"},
		),
		logger: logger,
	}
}

// safeExecute keeps a metrics panic from failing the request.
func (m *Metrics) safeExecute(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("metrics operation panicked", zap.String("operation", name), zap.Any("panic", r))
		}
	}()
	fn()
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	})
}

func (m *Metrics) EnrollmentResolved(status string) {
	m.safeExecute("EnrollmentResolved", func() {
		m.EnrollmentsTotal.WithLabelValues(status).Inc()
	})
}

func (m *Metrics) WaitlistPromoted() {
	m.safeExecute("WaitlistPromoted", func() {
		m.WaitlistPromotionsTotal.Inc()
	})
}

func (m *Metrics) AttendanceRecorded() {
	m.safeExecute("AttendanceRecorded", func() {
		m.AttendanceRecordedTotal.Inc()
	})
}

func (m *Metrics) Rejected(operation, code string) {
	m.safeExecute("Rejected", func() {
		m.RejectionsTotal.WithLabelValues(operation, code).Inc()
	})
}
