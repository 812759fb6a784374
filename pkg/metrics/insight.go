package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendations HTTP handler
	RecommendationLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "insight_recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendationRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "insight_recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	// Total number of dashboard metric requests served
	DashboardRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "insight_dashboard_requests_total",
		Help: "Total number of dashboard metric requests",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendationLatency,
		RecommendationRequests,
		DashboardRequests,
	)
}
