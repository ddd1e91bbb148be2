package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of requests issued to the order API",
		},
		[]string{"endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "storefront_api_request_duration_seconds",
			Help: "Duration of order API requests in seconds",
		},
		[]string{"endpoint"},
	)

	OrdersSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_orders_submitted_total",
			Help: "Total number of order submissions by outcome",
		},
		[]string{"outcome"},
	)

	OrderRevenue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_order_revenue",
			Help:    "Distribution of submitted order totals",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_sessions_active",
			Help: "Whether an authenticated session is currently held (0 or 1)",
		},
	)
)
