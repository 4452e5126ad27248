// Package metrics provides Prometheus metrics for prompt composition and
// scoring.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// promptsComposedTotal counts composed prompts.
	// Labels:
	//   - technique: technique id (e.g., "chain_of_thought")
	promptsComposedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optiprompt_prompts_composed_total",
			Help: "Total number of composed prompts",
		},
		[]string{"technique"},
	)

	// qualityScore records evaluated totals.
	// Labels:
	//   - level: quality band (low, medium, high, excellent)
	qualityScore = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "optiprompt_quality_score",
			Help:    "Distribution of prompt quality totals (0-100)",
			Buckets: []float64{30, 40, 50, 60, 70, 80, 86, 90, 100},
		},
		[]string{"level"},
	)

	// composeDuration records how long composition takes.
	composeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optiprompt_compose_duration_seconds",
			Help:    "Duration of prompt composition in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// httpRequestsTotal counts API requests.
	// Labels:
	//   - method: HTTP method
	//   - route: matched route pattern (e.g., "/v1/templates/:id")
	//   - status: response status code
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optiprompt_http_requests_total",
			Help: "Total number of HTTP API requests",
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(promptsComposedTotal)
	prometheus.MustRegister(qualityScore)
	prometheus.MustRegister(composeDuration)
	prometheus.MustRegister(httpRequestsTotal)
}

// RecordCompose records one composition with the given technique.
func RecordCompose(technique string, d time.Duration) {
	promptsComposedTotal.WithLabelValues(technique).Inc()
	composeDuration.Observe(d.Seconds())
}

// RecordQuality records an evaluated total in its level band.
func RecordQuality(level string, total int) {
	qualityScore.WithLabelValues(level).Observe(float64(total))
}

// RecordRequest records a served API request.
func RecordRequest(method, route, status string) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
}
