package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchStrategyRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specbot",
			Name:      "search_strategy_runs_total",
			Help:      "Total number of strategy executions",
		},
		[]string{"strategy", "status"},
	)

	SearchStrategyCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specbot",
			Name:      "search_strategy_candidates_total",
			Help:      "Raw candidates returned by each strategy before deduplication",
		},
		[]string{"strategy"},
	)

	ConfluenceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specbot",
			Name:      "confluence_requests_total",
			Help:      "Total number of Confluence search API requests",
		},
		[]string{"status"},
	)

	ConfluenceRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "specbot",
			Name:      "confluence_request_duration_seconds",
			Help:      "Confluence search API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specbot",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchStrategyRunsTotal)
	prometheus.MustRegister(SearchStrategyCandidatesTotal)
	prometheus.MustRegister(ConfluenceRequestsTotal)
	prometheus.MustRegister(ConfluenceRequestDuration)
	prometheus.MustRegister(SearchCacheTotal)
	searchMetricsRegistered = true
}
