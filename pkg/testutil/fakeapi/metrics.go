package fakeapi

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type serverMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)
	return &serverMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notely_fakeapi_requests_total",
			Help: "Requests served by the fake notes backend, by route template",
		}, []string{"route", "method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notely_fakeapi_request_duration_seconds",
			Help:    "Time spent serving fake backend requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (m *serverMetrics) observe(r RecordedRequest, elapsed time.Duration) {
	m.requests.WithLabelValues(r.Route, r.Method, strconv.Itoa(r.Status)).Inc()
	m.duration.WithLabelValues(r.Route, r.Method).Observe(elapsed.Seconds())
}

// WithRegistry registers request count and latency collectors on reg.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(s *Server) {
		s.rec.metrics = newServerMetrics(reg)
	}
}
