package metrics

import (
	"errors"

	"bolpurmart/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "partnerd_order_transitions_total",
		Help: "Order lifecycle operations by outcome.",
	},
		[]string{"operation", "outcome"},
	)

	LiveSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "partnerd_live_subscriptions",
		Help: "Open change feed subscriptions.",
	})

	OpenSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "partnerd_open_sessions",
		Help: "Partner sessions currently bound to a profile stream.",
	})

	PushFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "partnerd_push_failures_total",
		Help: "Push notifications and device token registrations that failed.",
	},
		[]string{"kind"},
	)

	OutboxRelayedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "partnerd_outbox_relayed_total",
		Help: "Lifecycle events published from the outbox.",
	})

	OrdersArchivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "partnerd_orders_archived_total",
		Help: "Delivered orders archived by the retention job.",
	})
)

// Outcome labels a lifecycle operation result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errs.ErrTransitionRejected):
		return "rejected"
	case errors.Is(err, errs.ErrWriteFailure):
		return "write_failure"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// ObserveTransition counts one lifecycle operation.
func ObserveTransition(operation string, err error) {
	OrderTransitionsTotal.WithLabelValues(operation, Outcome(err)).Inc()
}
