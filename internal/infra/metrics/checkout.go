package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		checkoutsTotal,
		checkoutValueTotal,
		paymentCopyTotal,
	)
}

var (
	checkoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "Opened checkouts by duration in months.",
		},
		[]string{"months"},
	)

	checkoutValueTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_value_total",
			Help: "Sum of discounted totals of opened checkouts, in whole currency units.",
		},
	)

	paymentCopyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_copy_total",
			Help: "Payment payload copies by result (copied/unavailable/failed).",
		},
		[]string{"result"},
	)
)

func ObserveCheckout(months int, discountedTotal float64) {
	checkoutsTotal.WithLabelValues(strconv.Itoa(months)).Inc()
	checkoutValueTotal.Add(discountedTotal)
}

func IncPaymentCopy(result string) {
	paymentCopyTotal.WithLabelValues(norm(result)).Inc()
}
