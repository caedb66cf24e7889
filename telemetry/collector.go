// Package telemetry is the out-of-scope "metrics/telemetry" collaborator:
// a thin facade the registry's hot path updates without ever blocking on
// it. It adds no behavior of its own — a Collector is pure observation.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector receives counters/gauges from a Registry's hot path. All
// methods must be safe to call without blocking the caller; Registry never
// checks a Collector's return value because there isn't one.
type Collector interface {
	// IncInserts bumps the total accepted-insert counter by one.
	IncInserts()
	// SetPoints records the registry's current total sample count.
	SetPoints(n uint64)
	// SetCompressedBytes records the registry's current total compressed
	// byte count.
	SetCompressedBytes(n uint64)
}

// Noop discards every observation. It is the registry's default Collector
// so telemetry is opt-in.
type Noop struct{}

var _ Collector = Noop{}

func (Noop) IncInserts()               {}
func (Noop) SetPoints(uint64)          {}
func (Noop) SetCompressedBytes(uint64) {}

// Prometheus registers three tsz_tsmap_* metrics against reg and reports
// through them.
type Prometheus struct {
	inserts         prometheus.Counter
	points          prometheus.Gauge
	compressedBytes prometheus.Gauge
}

// NewPrometheus creates and registers a Prometheus-backed Collector.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		inserts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tsz_tsmap_inserts_total",
			Help: "Total number of samples accepted by the registry.",
		}),
		points: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tsz_tsmap_points",
			Help: "Current total number of samples held across all live series.",
		}),
		compressedBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tsz_tsmap_compressed_bytes",
			Help: "Current total compressed byte size across all live series' blocks.",
		}),
	}

	for _, c := range []prometheus.Collector{p.inserts, p.points, p.compressedBytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Prometheus) IncInserts() {
	p.inserts.Inc()
}

func (p *Prometheus) SetPoints(n uint64) {
	p.points.Set(float64(n))
}

func (p *Prometheus) SetCompressedBytes(n uint64) {
	p.compressedBytes.Set(float64(n))
}
