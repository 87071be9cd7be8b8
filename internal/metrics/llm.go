package metrics

import "github.com/prometheus/client_golang/prometheus"

// Summarizer Prometheus metrics.
var (
	SummaryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specbot",
			Name:      "summary_requests_total",
			Help:      "Total number of summarizer requests",
		},
		[]string{"provider", "model", "status"},
	)

	SummaryRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "specbot",
			Name:      "summary_request_duration_seconds",
			Help:      "Summarizer request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	SummaryTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specbot",
			Name:      "summary_tokens_total",
			Help:      "Total summarizer tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	SummaryBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "specbot",
			Name:      "summary_budget_tokens_remaining",
			Help:      "Remaining token budget",
		},
		[]string{"provider", "period"},
	)
)

var summaryMetricsRegistered bool

// RegisterSummaryMetrics registers Prometheus summarizer metrics. Must be called once from main.
func RegisterSummaryMetrics() {
	if summaryMetricsRegistered {
		return
	}
	prometheus.MustRegister(SummaryRequestsTotal)
	prometheus.MustRegister(SummaryRequestDuration)
	prometheus.MustRegister(SummaryTokensTotal)
	prometheus.MustRegister(SummaryBudgetTokensRemaining)
	summaryMetricsRegistered = true
}
