package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline and model-call Prometheus metrics.
var (
	PipelineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "copilot",
			Name:      "pipeline_requests_total",
			Help:      "Total pipeline runs by routed agent and outcome",
		},
		[]string{"agent", "status"},
	)

	PipelineStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "copilot",
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of each pipeline stage in seconds",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage"}, // "route" / "retrieve" / "generate"
	)

	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "copilot",
			Name:      "model_requests_total",
			Help:      "Total calls to the external model provider",
		},
		[]string{"operation", "model", "status"},
	)

	ModelRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "copilot",
			Name:      "model_request_duration_seconds",
			Help:      "Model provider call duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation", "model"},
	)

	ModelTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "copilot",
			Name:      "model_tokens_total",
			Help:      "Total model tokens consumed",
		},
		[]string{"operation", "model", "type"}, // type: "prompt" / "completion" / "total"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers all non-middleware metrics with the
// default registry. Must be called once from main; metrics still record
// without registration, which keeps unit tests independent of it.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(PipelineRequestsTotal)
	prometheus.MustRegister(PipelineStageDuration)
	prometheus.MustRegister(ModelRequestsTotal)
	prometheus.MustRegister(ModelRequestDuration)
	prometheus.MustRegister(ModelTokensTotal)
	pipelineMetricsRegistered = true
}

var httpMetricsRegistered bool

// RegisterHTTPMetrics registers the HTTP middleware metrics.
func RegisterHTTPMetrics() {
	if httpMetricsRegistered {
		return
	}
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	httpMetricsRegistered = true
}
