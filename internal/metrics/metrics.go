// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersPlaced counts committed checkouts.
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agrihub_orders_placed_total",
		Help: "Number of orders successfully placed.",
	})

	// OrderValue observes the final amount of each committed order.
	OrderValue = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "agrihub_order_value",
		Help:    "Final order amounts in currency units.",
		Buckets: prometheus.ExponentialBuckets(10000, 2.5, 10),
	})

	// UsersRegistered counts successful registrations.
	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agrihub_users_registered_total",
		Help: "Number of accounts created.",
	})

	// ContactMessages counts stored contact form submissions.
	ContactMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agrihub_contact_messages_total",
		Help: "Number of contact messages received.",
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agrihub_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Middleware records request latency per route. Unmatched routes are
// grouped under "unmatched" to keep label cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		requestDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
