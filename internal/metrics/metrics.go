package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of vendor webhook callbacks received, by classification",
		},
		[]string{"kind"},
	)

	WebhookStoreSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "webhook_store_events",
			Help: "Number of webhook events currently held in memory",
		},
	)

	VendorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wsapme_requests_total",
			Help: "Total number of outbound WSAPME API calls, by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	VendorRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wsapme_request_duration_seconds",
			Help:    "Duration of outbound WSAPME API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	PollerChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poller_checks_total",
			Help: "Total number of status checks performed by the poller, by outcome",
		},
		[]string{"outcome"},
	)

	PollerRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poller_runs_total",
			Help: "Total number of finished poll loops, by final state",
		},
		[]string{"final_state"},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(WebhookEventsTotal)
		prometheus.MustRegister(WebhookStoreSize)
		prometheus.MustRegister(VendorRequestsTotal)
		prometheus.MustRegister(VendorRequestDuration)
		prometheus.MustRegister(PollerChecksTotal)
		prometheus.MustRegister(PollerRunsTotal)
	})
}
