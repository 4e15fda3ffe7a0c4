// Package observability exposes a system's pass activity as Prometheus
// metrics. The core stays metrics-free; hosts that want visibility attach
// a Metrics via the system's lifecycle hooks.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/weftui/weft"
)

// Metrics translates pass lifecycle hooks into Prometheus series.
type Metrics struct {
	passes       *prometheus.CounterVec
	passDuration prometheus.Histogram
	namedBlocks  prometheus.Gauge
	collected    prometheus.Counter

	lastDestroyed uint64
}

// NewMetrics creates the metric set and registers it with reg. A nil reg
// skips registration, which is useful for tests that inspect the metrics
// directly.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weft",
			Name:      "passes_total",
			Help:      "Dispatched passes by event type and kind.",
		}, []string{"event", "kind"}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weft",
			Name:      "pass_duration_seconds",
			Help:      "Wall time of one controller pass.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		namedBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weft",
			Name:      "named_blocks",
			Help:      "Named blocks currently alive in the data graph.",
		}),
		collected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Name:      "named_blocks_collected_total",
			Help:      "Named blocks destroyed by collection or deletion.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.passes, m.passDuration, m.namedBlocks, m.collected)
	}
	return m
}

// Hooks returns system hooks feeding these metrics. Merge manually if the
// system also needs its own hooks.
func (m *Metrics) Hooks() weft.Hooks {
	return weft.Hooks{OnPassEnd: m.observe}
}

func (m *Metrics) observe(p weft.PassInfo) {
	kind := "global"
	switch {
	case p.Refresh:
		kind = "refresh"
	case p.Targeted:
		kind = "targeted"
	}
	m.passes.WithLabelValues(p.Event, kind).Inc()
	m.passDuration.Observe(p.Duration.Seconds())
	m.namedBlocks.Set(float64(p.Stats.NamedBlocksCreated - p.Stats.NamedBlocksDestroyed))
	if d := p.Stats.NamedBlocksDestroyed - m.lastDestroyed; d > 0 {
		m.collected.Add(float64(d))
		m.lastDestroyed = p.Stats.NamedBlocksDestroyed
	}
}
