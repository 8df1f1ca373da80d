// Package metrics exposes Prometheus metrics for the chat endpoint.
//
// Metrics:
//   - <namespace>_chat_requests_total: chat requests by mode and response status
//   - <namespace>_upstream_request_duration_seconds: completion API latency by provider and outcome
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	chatRequests     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// New creates a collector on its own registry, so tests can build as many as they like.
func New(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		chatRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_requests_total",
				Help:      "Total number of chat requests handled",
			},
			[]string{"mode", "status"},
		),

		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Duration of completion API calls in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"provider", "outcome"},
		),
	}

	c.registry.MustRegister(
		c.chatRequests,
		c.upstreamDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// RecordChat counts one handled chat request. Mode is whatever the caller
// sent if it was valid, "unknown" otherwise, to keep label cardinality bounded.
func (c *Collector) RecordChat(mode string, status int) {
	c.chatRequests.WithLabelValues(mode, strconv.Itoa(status)).Inc()
}

// ObserveUpstream records the latency of one completion call.
func (c *Collector) ObserveUpstream(provider, outcome string, d time.Duration) {
	c.upstreamDuration.WithLabelValues(provider, outcome).Observe(d.Seconds())
}

// Handler returns the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
