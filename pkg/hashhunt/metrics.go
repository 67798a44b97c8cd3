package hashhunt

import (
	"github.com/mahdiidarabi/hashhunt/internal/bruteforce"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "hashhunt"

// Metrics exposes search counters to Prometheus. It is safe for concurrent
// use by all workers.
type Metrics struct {
	KeysChecked       prometheus.Counter
	Batches           prometheus.Counter
	Partitions        *prometheus.CounterVec
	Matches           prometheus.Counter
	TableBuildSeconds prometheus.Gauge
}

// NewMetrics registers the search metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		KeysChecked: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "keys_checked_total",
			Help:      "Number of private keys whose public key digest was compared.",
		}),
		Batches: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "batches_total",
			Help:      "Number of key batches processed.",
		}),
		Partitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "partitions_total",
			Help:      "Number of finished partitions by terminal status.",
		}, []string{"status"}),
		Matches: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "matches_total",
			Help:      "Number of recorded matches.",
		}),
		TableBuildSeconds: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "table_build_seconds",
			Help:      "Time spent building the precomputed point tables.",
		}),
	}
}

func (m *Metrics) BatchDone(keys int) {
	m.KeysChecked.Add(float64(keys))
	m.Batches.Inc()
}

func (m *Metrics) PartitionDone(o bruteforce.Outcome) {
	m.Partitions.WithLabelValues(o.Status.String()).Inc()
}

// observers fans callbacks out to several observers.
type observers []bruteforce.Observer

func (o observers) BatchDone(keys int) {
	for _, obs := range o {
		obs.BatchDone(keys)
	}
}

func (o observers) PartitionDone(out bruteforce.Outcome) {
	for _, obs := range o {
		obs.PartitionDone(out)
	}
}
