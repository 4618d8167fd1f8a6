package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(orderNotificationsTotal) }

var orderNotificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "order_notifications_total",
		Help: "Order notices pushed to the shop chat, labeled by result.",
	},
	[]string{"result"}, // 'sent', 'failed', 'canceled'
)

func IncOrderNotification(result string) {
	orderNotificationsTotal.WithLabelValues(norm(result)).Inc()
}
