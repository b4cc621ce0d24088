package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrderLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_lookups_total",
			Help: "Number of order status lookups by outcome",
		},
		[]string{"outcome"}, // статус заказа или код ошибки
	)
	ThrottleRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "throttle_rejections_total",
			Help: "Number of requests rejected by the per-client throttle",
		},
	)
	ThrottleErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "throttle_errors_total",
			Help: "Number of throttle backend failures",
		},
	)
)

var (
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of order store requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"}, // ok|http_error|network_error|decode_error
	)
	LookupEventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_events_published_total",
			Help: "Lookup events sent to the event stream",
		},
		[]string{"result"}, // ok|failed
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			OrderLookups,
			ThrottleRejections,
			ThrottleErrors,
			UpstreamRequestDuration,
			LookupEventsPublished,
		)
	})
}
