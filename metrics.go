package piecerng

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts exploration work. A nil *Metrics is valid and records
// nothing. All methods are safe for concurrent use.
type Metrics struct {
	seedsWalked   prometheus.Counter
	seedsKnown    prometheus.Counter
	loopJoins     prometheus.Counter
	loopsFound    prometheus.Counter
	transitions   prometheus.Counter
	tailLength    prometheus.Histogram
	loopSize      prometheus.Histogram
	partitionDone *prometheus.CounterVec
}

// NewMetrics registers exploration metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		seedsWalked: f.NewCounter(prometheus.CounterOpts{
			Namespace: "piecerng",
			Name:      "seeds_walked_total",
			Help:      "Seeds whose transition chain was walked.",
		}),
		seedsKnown: f.NewCounter(prometheus.CounterOpts{
			Namespace: "piecerng",
			Name:      "seeds_known_total",
			Help:      "Seeds skipped because their canonical seed was already solved.",
		}),
		loopJoins: f.NewCounter(prometheus.CounterOpts{
			Namespace: "piecerng",
			Name:      "loop_joins_total",
			Help:      "Walks that ended on a previously discovered loop.",
		}),
		loopsFound: f.NewCounter(prometheus.CounterOpts{
			Namespace: "piecerng",
			Name:      "loops_discovered_total",
			Help:      "Distinct loops discovered.",
		}),
		transitions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "piecerng",
			Name:      "transitions_total",
			Help:      "Piece transitions computed while walking.",
		}),
		tailLength: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "piecerng",
			Name:      "steps_to_cycle",
			Help:      "Steps from a seed's first state to its loop.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		loopSize: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "piecerng",
			Name:      "loop_size_states",
			Help:      "Number of states on each discovered loop.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		partitionDone: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "piecerng",
			Name:      "partitions_completed_total",
			Help:      "Selector partitions fully explored.",
		}, []string{"selector"}),
	}
}

func (m *Metrics) seedKnown() {
	if m != nil {
		m.seedsKnown.Inc()
	}
}

func (m *Metrics) walked(transitions int, steps uint32, joined bool) {
	if m == nil {
		return
	}
	m.seedsWalked.Inc()
	m.transitions.Add(float64(transitions))
	m.tailLength.Observe(float64(steps))
	if joined {
		m.loopJoins.Inc()
	}
}

func (m *Metrics) loopFound(size int) {
	if m != nil {
		m.loopsFound.Inc()
		m.loopSize.Observe(float64(size))
	}
}

func (m *Metrics) partitionCompleted(selector uint8) {
	if m != nil {
		m.partitionDone.WithLabelValues(hexNybble(selector)).Inc()
	}
}

func hexNybble(v uint8) string {
	return string("0123456789ABCDEF"[v&0x0F])
}
