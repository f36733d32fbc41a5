// Package metrics holds the Prometheus collectors of the service. They register
// with the default registry, which the HTTP adapter serves at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OutboxEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laundry_outbox_events_total",
		Help: "Outbox events handled by the relay, by result.",
	},
		[]string{"result"},
	)

	OutboxRelayErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laundry_outbox_relay_errors_total",
		Help: "Relay passes aborted by a store error.",
	})

	StaleClaimsReleasedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laundry_stale_claims_released_total",
		Help: "Processing claims released by the system after the stale timeout.",
	})

	RequestErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laundry_request_errors_total",
		Help: "Rejected HTTP requests, by route and status code.",
	},
		[]string{"route", "code"},
	)
)
