package metrics

import "github.com/prometheus/client_golang/prometheus"

// Concierge Prometheus metrics.
var (
	ChatTurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "chat_turns_total",
			Help:      "Total chat turns handled, by outcome",
		},
		[]string{"outcome"}, // ask / smalltalk / search_hit / search_empty / search_error / ai_error
	)

	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "completion_requests_total",
			Help:      "Total completion requests to the language model",
		},
		[]string{"model", "status"},
	)

	CompletionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "concierge",
			Name:      "completion_request_duration_seconds",
			Help:      "Completion request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	CompletionTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "completion_tokens_total",
			Help:      "Total completion tokens consumed",
		},
		[]string{"model", "type"}, // "prompt" / "completion"
	)

	EngineSearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "engine_searches_total",
			Help:      "Total search engine queries",
		},
		[]string{"status"}, // "success" / "schema_error" / "error"
	)

	SchemaHealsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "schema_heals_total",
			Help:      "Total schema registry extensions triggered by engine errors",
		},
		[]string{"facet"}, // "filter" / "sort"
	)
)

var conciergeMetricsRegistered bool

// RegisterConciergeMetrics registers the concierge metrics. Must be called once from main.
func RegisterConciergeMetrics() {
	if conciergeMetricsRegistered {
		return
	}
	prometheus.MustRegister(ChatTurnsTotal)
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(CompletionRequestDuration)
	prometheus.MustRegister(CompletionTokensTotal)
	prometheus.MustRegister(EngineSearchesTotal)
	prometheus.MustRegister(SchemaHealsTotal)
	conciergeMetricsRegistered = true
}
