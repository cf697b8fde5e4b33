package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for one client process.
// Collectors are registered on the given registerer rather than the global
// one so tests can build as many clients as they like.
type Metrics struct {
	APIRequests          *prometheus.CounterVec
	APILatency           *prometheus.HistogramVec
	SessionInvalidations prometheus.Counter
	PlanLimitHits        prometheus.Counter
	NotesListed          prometheus.Gauge
}

// New creates and registers all client metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notely_api_requests_total",
			Help: "Total API requests, labeled by route template, method and status",
		}, []string{"route", "method", "status"}),
		APILatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notely_api_request_duration_seconds",
			Help:    "Latency of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		SessionInvalidations: factory.NewCounter(prometheus.CounterOpts{
			Name: "notely_session_invalidations_total",
			Help: "Total number of stored sessions cleared after a 401 response",
		}),
		PlanLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "notely_plan_limit_hits_total",
			Help: "Total number of note creations blocked by the free plan limit",
		}),
		NotesListed: factory.NewGauge(prometheus.GaugeOpts{
			Name: "notely_notes_listed",
			Help: "Number of notes returned by the most recent list call",
		}),
	}
}

// ObserveRequest records one finished API call. status is 0 for transport failures.
func (m *Metrics) ObserveRequest(route, method string, status int, start time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.APIRequests.WithLabelValues(route, method, label).Inc()
	m.APILatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementSessionInvalidations() {
	m.SessionInvalidations.Inc()
}

func (m *Metrics) IncrementPlanLimitHits() {
	m.PlanLimitHits.Inc()
}

func (m *Metrics) SetNotesListed(n int) {
	m.NotesListed.Set(float64(n))
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
