// Package metrics defines and registers all custom Prometheus metrics for the
// eParcel tracking API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eparcel"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "inactive"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ParcelsCreatedTotal counts newly registered parcels.
var ParcelsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parcels_created_total",
		Help:      "Total number of parcels registered.",
	},
)

// TransitionsTotal counts applied status transitions.
// Label:
//   - status: the target status (e.g. "Accepted", "Delivered")
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of parcel status transitions applied.",
	},
	[]string{"status"},
)

// TransitionsRejectedTotal counts refused transition requests.
// Label:
//   - reason: "invalid_transition", "forbidden", "not_found", or "duplicate"
var TransitionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_rejected_total",
		Help:      "Total number of parcel status transitions rejected.",
	},
	[]string{"reason"},
)

// ChatRepliesTotal counts auto-reply generation outcomes.
// Label:
//   - result: "generated" or "fallback"
var ChatRepliesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_replies_total",
		Help:      "Total number of chat auto-replies, labelled by outcome.",
	},
	[]string{"result"},
)
