package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Upgrades        *prometheus.CounterVec
	UpgradeDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Upgrades: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notely_tenant_upgrades_total",
			Help: "Total plan upgrade attempts, labeled by result",
		}, []string{"result"}),
		UpgradeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "notely_tenant_upgrade_duration_seconds",
			Help:    "Duration of plan upgrade calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) IncrementUpgrade(result string) {
	m.Upgrades.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveUpgrade(start time.Time) {
	m.UpgradeDuration.Observe(time.Since(start).Seconds())
}
