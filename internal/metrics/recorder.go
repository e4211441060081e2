package metrics

import (
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder counts evaluated operations on a private Prometheus registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	fallbacks  prometheus.Counter
	duration   *prometheus.HistogramVec
}

// NewRecorder creates a recorder with its own registry, so several
// recorders can coexist in one process.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bncalc_operations_total",
			Help: "Evaluated operations by operator and outcome.",
		}, []string{"op", "outcome"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bncalc_fft_fallbacks_total",
			Help: "FFT multiplications computed with the schoolbook algorithm because the operands exceeded the float64 precision window.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bncalc_operation_duration_seconds",
			Help:    "Wall time of evaluated operations.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, []string{"op"}),
	}
	r.registry.MustRegister(r.operations, r.fallbacks, r.duration)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Observe records one evaluation of op that took d and failed with err,
// or succeeded when err is nil.
func (r *Recorder) Observe(op string, d time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	r.operations.WithLabelValues(op, outcome).Inc()
	r.duration.WithLabelValues(op).Observe(d.Seconds())
}

// FFTFallback records a multiplication that left the FFT precision window.
func (r *Recorder) FFTFallback() {
	if r == nil {
		return
	}
	r.fallbacks.Inc()
}

// OperationStat summarizes one operator.
type OperationStat struct {
	Op           string
	OK           uint64
	Failed       uint64
	TotalSeconds float64
}

// Snapshot is a plain copy of the recorder state.
type Snapshot struct {
	Operations   []OperationStat
	FFTFallbacks uint64
}

// Snapshot gathers the registry into plain values, operators sorted by
// name.
func (r *Recorder) Snapshot() (Snapshot, error) {
	if r == nil {
		return Snapshot{}, nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return Snapshot{}, err
	}

	stats := map[string]*OperationStat{}
	stat := func(op string) *OperationStat {
		if s, ok := stats[op]; ok {
			return s
		}
		s := &OperationStat{Op: op}
		stats[op] = s
		return s
	}

	var snap Snapshot
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch mf.GetName() {
			case "bncalc_operations_total":
				s := stat(label(m, "op"))
				n := uint64(m.GetCounter().GetValue())
				if label(m, "outcome") == OutcomeOK {
					s.OK += n
				} else {
					s.Failed += n
				}
			case "bncalc_operation_duration_seconds":
				stat(label(m, "op")).TotalSeconds += m.GetHistogram().GetSampleSum()
			case "bncalc_fft_fallbacks_total":
				snap.FFTFallbacks = uint64(m.GetCounter().GetValue())
			}
		}
	}

	for _, s := range stats {
		snap.Operations = append(snap.Operations, *s)
	}
	slices.SortFunc(snap.Operations, func(a, b OperationStat) int {
		switch {
		case a.Op < b.Op:
			return -1
		case a.Op > b.Op:
			return 1
		}
		return 0
	})
	return snap, nil
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
