package arith

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/quforge/quarith/internal/quantum"
)

var (
	buildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quarith_circuit_builds_total",
			Help: "The total number of arithmetic circuits built",
		},
		[]string{"operator"},
	)
	buildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "quarith_circuit_build_duration_seconds",
			Help: "The duration of circuit construction in seconds",
		},
		[]string{"operator"},
	)
	circuitSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quarith_circuit_size_operations",
			Help:    "The flattened operation count of built circuits",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		},
		[]string{"operator"},
	)
)

// recordBuild updates the build metrics for one completed circuit
// construction.
func recordBuild(operator string, c *quantum.Circuit, dur time.Duration) {
	buildsTotal.WithLabelValues(operator).Inc()
	buildDuration.WithLabelValues(operator).Observe(dur.Seconds())
	circuitSize.WithLabelValues(operator).Observe(float64(c.Size()))
}
