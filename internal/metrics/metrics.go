// Package metrics содержит счётчики prometheus для исходов оформления заказа.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики исходов оформления заказа.
var (
	// CheckoutCommitted — число успешно подтверждённых заказов.
	CheckoutCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkout_committed_total",
		Help: "Number of checkout attempts that committed both writes.",
	})
	// CheckoutFailed — число попыток, завершившихся ошибкой любой из записей.
	CheckoutFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkout_failed_total",
		Help: "Number of checkout attempts that failed on either write.",
	})
	// CheckoutOrphanedPurchase — число попыток, где покупка записана,
	// а отчёт — нет: окно несогласованности для ручной сверки.
	CheckoutOrphanedPurchase = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkout_orphaned_purchase_total",
		Help: "Number of attempts where purchase succeeded but report failed.",
	})
)
