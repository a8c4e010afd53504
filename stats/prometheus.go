package stats

import "github.com/prometheus/client_golang/prometheus"

// PrometheusRecorder mirrors Stats onto Prometheus gauges/counters for
// long-running services that embed the engine. It is entirely caller
// opt-in: the engine never registers these metrics itself, nor depends on
// a running Prometheus server.
type PrometheusRecorder struct {
	Runs           prometheus.Counter
	Failures       prometheus.Counter
	DelayedPivots  prometheus.Counter
	MaxFrontSize   prometheus.Gauge
	ElapsedSeconds prometheus.Histogram
}

// NewPrometheusRecorder constructs a PrometheusRecorder and registers its
// collectors with reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ssids_runs_total",
			Help: "Total number of tree factorization runs.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ssids_not_positive_definite_total",
			Help: "Total number of runs that aborted as not positive definite.",
		}),
		DelayedPivots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ssids_delayed_pivots_total",
			Help: "Total number of pivots delayed to a parent front across all runs.",
		}),
		MaxFrontSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ssids_max_front_size",
			Help: "Largest dense front size seen in the most recent run.",
		}),
		ElapsedSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ssids_run_duration_seconds",
			Help:    "Wall-clock duration of a tree factorization run.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(r.Runs, r.Failures, r.DelayedPivots, r.MaxFrontSize, r.ElapsedSeconds)
	return r
}

// Record mirrors one completed Stats value onto the recorder's
// collectors.
func (r *PrometheusRecorder) Record(s Stats) {
	r.Runs.Inc()
	if s.Flag != FlagSuccess {
		r.Failures.Inc()
	}
	r.DelayedPivots.Add(float64(s.NumDelayedTotal))
	r.MaxFrontSize.Set(float64(s.MaxFrontSize))
	r.ElapsedSeconds.Observe(s.Elapsed.Seconds())
}
