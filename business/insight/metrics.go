package insight

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FindingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_findings_total",
			Help: "Count of findings produced by evaluators, by category.",
		},
		[]string{"category"},
	)

	FindingsDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "insight_findings_dropped_total",
			Help: "Count of findings dropped because they could not be scored.",
		},
	)
)

func init() {
	prometheus.MustRegister(FindingsTotal, FindingsDroppedTotal)
}
