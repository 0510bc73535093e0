package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated        prometheus.Counter
	UsersDeleted        prometheus.Counter
	EventsAppended      prometheus.Counter
	AssertionsRecorded  *prometheus.CounterVec
	ValidationRejected  *prometheus.CounterVec
	ProjectionsComputed prometheus.Counter
	ProjectionLatency   prometheus.Histogram
	EndpointLatency     *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentd_users_created_total",
			Help: "Total number of users created",
		}),
		UsersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentd_users_deleted_total",
			Help: "Total number of users deleted",
		}),
		EventsAppended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentd_events_appended_total",
			Help: "Total number of consent events appended to the log",
		}),
		AssertionsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "consentd_assertions_recorded_total",
			Help: "Total number of consent assertions recorded, labeled by type and value",
		}, []string{"type", "enabled"}),
		ValidationRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "consentd_validation_rejected_total",
			Help: "Total number of rejected event submissions, labeled by reason",
		}, []string{"reason"}),
		ProjectionsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentd_projections_computed_total",
			Help: "Total number of consent state projections computed",
		}),
		ProjectionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "consentd_projection_latency_seconds",
			Help:    "Latency of consent state projections in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "consentd_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementUsersDeleted() {
	m.UsersDeleted.Inc()
}

func (m *Metrics) IncrementEventsAppended() {
	m.EventsAppended.Inc()
}

// IncrementAssertionsRecorded counts one stored assertion by type and value.
func (m *Metrics) IncrementAssertionsRecorded(consentType string, enabled bool) {
	value := "false"
	if enabled {
		value = "true"
	}
	m.AssertionsRecorded.WithLabelValues(consentType, value).Inc()
}

func (m *Metrics) IncrementValidationRejected(reason string) {
	m.ValidationRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveProjection(durationSeconds float64) {
	m.ProjectionsComputed.Inc()
	m.ProjectionLatency.Observe(durationSeconds)
}

func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}
