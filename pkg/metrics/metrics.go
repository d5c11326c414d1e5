// Package metrics provides Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatbox_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbox_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ConversationsCreatedTotal counts created conversations.
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbox_conversations_created_total",
			Help: "Total conversations created",
		},
	)

	// MessageExchangesTotal counts completed user/bot message exchanges.
	MessageExchangesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbox_message_exchanges_total",
			Help: "Total user/bot message exchanges persisted",
		},
	)

	// WSConnectionsActive tracks open websocket subscriptions.
	WSConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatbox_ws_connections_active",
			Help: "Number of active websocket connections",
		},
	)
)
