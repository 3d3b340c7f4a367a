package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the prometheus collectors updated by a Session.
type Metrics struct {
	// Selections counts active record selections by source and reason.
	Selections *prometheus.CounterVec
	// Replacements counts records written by Replace or UseProfile.
	Replacements prometheus.Counter
	// StoreErrors counts failed store operations by operation.
	StoreErrors *prometheus.CounterVec
	// NetWorth is the net worth of the active record.
	NetWorth prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Selections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wealth",
			Name:      "record_selections_total",
			Help:      "Active record selections, by source and fallback reason.",
		}, []string{"source", "reason"}),
		Replacements: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wealth",
			Name:      "record_replacements_total",
			Help:      "Records replaced by an import or a profile switch.",
		}),
		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wealth",
			Name:      "store_errors_total",
			Help:      "Failed store operations.",
		}, []string{"op"}),
		NetWorth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "wealth",
			Name:      "net_worth",
			Help:      "Net worth of the active record, in its own currency.",
		}),
	}
}
