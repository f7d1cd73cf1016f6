package collect

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics about packet filtering: the active
// filter expression as a constant gauge label, and how many packets have
// been rejected, published, and dropped.
type Metrics struct {
	Filter    *prometheus.GaugeVec
	Rejected  prometheus.Counter
	Published prometheus.Counter
	Dropped   prometheus.Counter
}

// NewMetrics creates a newly initialized Metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Filter: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "packets_filter_info",
			Help: "Constant, labeled with the compiled filter expression",
		}, []string{"filter"}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "packets_rejected_total",
			Help: "Packets rejected by the display filter",
		}),
		Published: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "packets_published_total",
			Help: "Packets published downstream",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "packets_dropped_total",
			Help: "Packets dropped due to a full publishing queue",
		}),
	}

	return m
}

// List the items contained within a Metrics so they can be exposed via a
// prometheus.Registry.
func (m Metrics) List() []prometheus.Collector {
	return []prometheus.Collector{
		m.Filter,
		m.Rejected,
		m.Published,
		m.Dropped,
	}
}
