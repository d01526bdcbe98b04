package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreated counts orders by payment method.
	OrdersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_orders_created_total",
		Help: "Orders created, labeled by payment method.",
	}, []string{"payment_method"})

	// OrderStatusChanges counts fulfillment transitions by target status.
	OrderStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_order_status_changes_total",
		Help: "Order status transitions, labeled by new status.",
	}, []string{"status"})

	// PaymentCallbacks counts provider callbacks by reported outcome.
	PaymentCallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_payment_callbacks_total",
		Help: "Payment provider callbacks, labeled by outcome.",
	}, []string{"outcome"})

	// PaymentSignatureFailures counts rejected callback signatures.
	PaymentSignatureFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_payment_signature_failures_total",
		Help: "Payment callbacks rejected for signature mismatch.",
	})

	// CacheHits / CacheMisses track cache-aside effectiveness per entity.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_cache_hits_total",
		Help: "Cache hits, labeled by entity.",
	}, []string{"entity"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_cache_misses_total",
		Help: "Cache misses, labeled by entity.",
	}, []string{"entity"})
)
