// Package metrics provides Prometheus instrumentation for linkswap.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	enabled     bool
	serviceName string

	// HTTP metrics
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec

	// Core metrics
	slotTransitionTotal   *prometheus.CounterVec
	verificationTotal     *prometheus.CounterVec
	ledgerTransferTotal   *prometheus.CounterVec
	ledgerTransferCredits *prometheus.CounterVec
	campaignEventTotal    *prometheus.CounterVec
)

// Init registers the collectors. Recording functions are no-ops until Init
// has been called with enabledFlag set.
func Init(enabledFlag bool, svcName string) {
	enabled = enabledFlag
	serviceName = svcName

	if !enabled {
		return
	}

	labels := prometheus.Labels{"service": serviceName}

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		},
		[]string{"method", "path"},
	)

	slotTransitionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "slot_transition_total",
			Help:        "Committed slot state transitions",
			ConstLabels: labels,
		},
		[]string{"from", "to"},
	)

	verificationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "link_verification_total",
			Help:        "Proof page verifications by outcome",
			ConstLabels: labels,
		},
		[]string{"result"},
	)

	ledgerTransferTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "ledger_transfer_total",
			Help:        "Recorded ledger transactions",
			ConstLabels: labels,
		},
		[]string{"type"},
	)

	ledgerTransferCredits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "ledger_transfer_credits_total",
			Help:        "Credits moved by recorded ledger transactions",
			ConstLabels: labels,
		},
		[]string{"type"},
	)

	campaignEventTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "campaign_event_total",
			Help:        "Campaign lifecycle events",
			ConstLabels: labels,
		},
		[]string{"event"},
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	if !enabled {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	}
	return promhttp.Handler()
}

// Enabled returns whether metrics are enabled.
func Enabled() bool {
	return enabled
}
