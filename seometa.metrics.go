package seometa

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters updated by a Renderer. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	rendered    *prometheus.CounterVec
	omitted     *prometheus.CounterVec
	failed      *prometheus.CounterVec
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      MetricSlotsRendered,
			Help:      MetricHelpSlotsRendered,
		}, []string{MetricLabelSchema, MetricLabelKind}),
		omitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      MetricSlotsOmitted,
			Help:      MetricHelpSlotsOmitted,
		}, []string{MetricLabelSchema}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      MetricSlotFailures,
			Help:      MetricHelpSlotFailures,
		}, []string{MetricLabelSchema, MetricLabelSlot}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      MetricCacheHits,
			Help:      MetricHelpCacheHits,
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      MetricCacheMisses,
			Help:      MetricHelpCacheMisses,
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.rendered, m.omitted, m.failed, m.cacheHits, m.cacheMisses} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) slotRendered(schema string, kind SlotKind) {
	if m == nil {
		return
	}
	m.rendered.WithLabelValues(schema, kind.String()).Inc()
}

func (m *Metrics) slotOmitted(schema string) {
	if m == nil {
		return
	}
	m.omitted.WithLabelValues(schema).Inc()
}

func (m *Metrics) slotFailed(schema, slot string) {
	if m == nil {
		return
	}
	m.failed.WithLabelValues(schema, slot).Inc()
}

func (m *Metrics) cacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) cacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}
