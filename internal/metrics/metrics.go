package metrics

// Package metrics exports the counters of Gröbner runs as Prometheus metrics.
// Each Recorder owns its registry so that batch runs and tests stay isolated.

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gbf2/groebner"
)

const namespace = "gbf2"

// Recorder collects the statistics of finished runs. It is safe for concurrent use.
type Recorder struct {
	reg *prometheus.Registry

	Runs           *prometheus.CounterVec
	Criteria       *prometheus.CounterVec
	Pairs          prometheus.Counter
	ZeroReductions prometheus.Counter
	ReductionSteps prometheus.Counter
	LinearAlgebra  prometheus.Counter
	Generators     *prometheus.GaugeVec
	CacheHitRatio  *prometheus.GaugeVec
	Duration       prometheus.Histogram
}

// NewRecorder registers the metrics on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished runs by final state",
		}, []string{"state"}),
		Criteria: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "criteria_total",
			Help:      "Pairs discarded by each criterion",
		}, []string{"criterion"}),
		Pairs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_processed_total",
			Help:      "Pairs taken from the scheduler",
		}),
		ZeroReductions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zero_reductions_total",
			Help:      "Pairs that reduced to zero",
		}),
		ReductionSteps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reduction_steps_total",
			Help:      "Single top-reduction steps",
		}),
		LinearAlgebra: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "linear_algebra_steps_total",
			Help:      "Batches reduced by the linear-algebra step",
		}),
		Generators: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generators",
			Help:      "Generators at the end of the last run of each system",
		}, []string{"system"}),
		CacheHitRatio: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_hit_ratio",
			Help:      "Memo cache hit ratio of the last run of each system",
		}, []string{"system"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a run",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
	}
}

// Registry exposes the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Observe records one finished run of the named system.
func (r *Recorder) Observe(system string, state groebner.State, st groebner.Stats, elapsed time.Duration) {
	r.Runs.WithLabelValues(state.String()).Inc()
	r.Criteria.WithLabelValues("chain").Add(float64(st.ChainCriterions))
	r.Criteria.WithLabelValues("easy_product").Add(float64(st.EasyProductCriterions))
	r.Criteria.WithLabelValues("extended_product").Add(float64(st.ExtendedProductCriterions))
	r.Criteria.WithLabelValues("variable_chain").Add(float64(st.VariableChainCriterions))
	r.Pairs.Add(float64(st.PairsProcessed))
	r.ZeroReductions.Add(float64(st.ZeroReductions))
	r.ReductionSteps.Add(float64(st.ReductionSteps))
	r.LinearAlgebra.Add(float64(st.LinearAlgebraSteps))
	r.Generators.WithLabelValues(system).Set(float64(st.Generators))
	ratio := 0.0
	if total := st.Cache.Hits + st.Cache.Misses; total > 0 {
		ratio = float64(st.Cache.Hits) / float64(total)
	}
	r.CacheHitRatio.WithLabelValues(system).Set(ratio)
	r.Duration.Observe(elapsed.Seconds())
}

// WriteTextfile writes the metrics in the text exposition format, for the node
// exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
