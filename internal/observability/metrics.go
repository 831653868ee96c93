package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "resume_matcher"

// Registry holds every collector exported by the service
var Registry = prometheus.NewRegistry()

var (
	llmCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "llm_calls_total",
		Help:      "Calls to the language model provider by operation and outcome.",
	}, []string{"operation", "outcome"})

	llmLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "llm_call_duration_seconds",
		Help:      "Latency of language model provider calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
	}, []string{"operation"})

	extractions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "extractions_total",
		Help:      "Structured extractions by document kind and strategy used.",
	}, []string{"kind", "strategy"})

	suggestionsEmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "suggestions_emitted_total",
		Help:      "Suggestions returned to callers by generation mode.",
	}, []string{"mode"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern and status code.",
	}, []string{"route", "status"})
)

func init() {
	Registry.MustRegister(
		llmCalls, llmLatency, extractions, suggestionsEmitted, httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveLLMCall records one provider call
func ObserveLLMCall(operation, outcome string, elapsed time.Duration) {
	llmCalls.WithLabelValues(operation, outcome).Inc()
	llmLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveExtraction records which strategy produced a structured model
func ObserveExtraction(kind, strategy string) {
	extractions.WithLabelValues(kind, strategy).Inc()
}

// ObserveSuggestions records n suggestions returned from a generation mode
func ObserveSuggestions(mode string, n int) {
	if n > 0 {
		suggestionsEmitted.WithLabelValues(mode).Add(float64(n))
	}
}

// ObserveHTTPRequest records one served request
func ObserveHTTPRequest(route, status string) {
	httpRequests.WithLabelValues(route, status).Inc()
}

// MetricsHandler serves the registry in the Prometheus exposition format
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
