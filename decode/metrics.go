package decode

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the Prometheus metrics for capture decoding: a
// constant gauge naming the capture source, and counters for decoded and
// partially decoded packets.
type Metrics struct {
	Capture   *prometheus.GaugeVec
	Decoded   prometheus.Counter
	Truncated prometheus.Counter
}

// NewMetrics creates, but does not register, the decode metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Capture: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "capture_source_info",
			Help: "Constant, labeled with capture file and link type",
		}, []string{"file", "link_type"}),
		Decoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "packets_decoded_total",
			Help: "Packets decoded into views",
		}),
		Truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "packets_partial_total",
			Help: "Packets whose decode stopped at an error layer",
		}),
	}
	return m
}

// List the items contained within a Metrics so they can be exposed via a
// prometheus.Registry.
func (m Metrics) List() []prometheus.Collector {
	return []prometheus.Collector{
		m.Capture,
		m.Decoded,
		m.Truncated,
	}
}
