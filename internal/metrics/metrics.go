// Package metrics registers the Prometheus collectors for the service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	WebhooksReceived     *prometheus.CounterVec
	PipelineOutcomes     *prometheus.CounterVec
	PipelineDuration     prometheus.Histogram
	AiRequests           *prometheus.CounterVec
	AiRequestDuration    *prometheus.HistogramVec
	MessengerDeliveries  *prometheus.CounterVec
	CredentialExhaustion prometheus.Counter
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			WebhooksReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhooks_received_total",
				Help:      "Total webhook deliveries received, by parsed event kind.",
			}, []string{"kind"}),
			PipelineOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_outcomes_total",
				Help:      "Total pipeline runs by terminal outcome.",
			}, []string{"outcome"}),
			PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pipeline_duration_seconds",
				Help:      "End-to-end processing duration per webhook delivery.",
				Buckets:   prometheus.DefBuckets,
			}),
			AiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ai_requests_total",
				Help:      "Total AI completion calls by status.",
			}, []string{"status"}),
			AiRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ai_request_duration_seconds",
				Help:      "Latency distribution for AI completion calls.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"status"}),
			MessengerDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messenger_deliveries_total",
				Help:      "Total messenger API deliveries by operation and status.",
			}, []string{"op", "status"}),
			CredentialExhaustion: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "credential_exhaustion_total",
				Help:      "Times no usable API credential was found.",
			}),
		}

		prometheus.MustRegister(
			metricsInstance.WebhooksReceived,
			metricsInstance.PipelineOutcomes,
			metricsInstance.PipelineDuration,
			metricsInstance.AiRequests,
			metricsInstance.AiRequestDuration,
			metricsInstance.MessengerDeliveries,
			metricsInstance.CredentialExhaustion,
		)
	})
	return metricsInstance
}
