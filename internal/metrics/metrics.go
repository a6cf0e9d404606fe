package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the per-client limiter",
		},
	)

	// facade actions
	ActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_actions_total",
			Help: "Facade actions by outcome",
		},
		[]string{"action", "outcome"}, // fulfilled|rejected
	)
	ActionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inkwell_action_duration_seconds",
			Help:    "Facade action latency, artificial delay included",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"action"},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

var once sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(RequestsTotal, RequestDuration, RateLimited)
		prometheus.MustRegister(ActionsTotal)
		prometheus.MustRegister(ActionDuration)
		prometheus.MustRegister(WorkerQueueDepth)
	})
}

// ObserveRequest records one served HTTP request under its route pattern.
func ObserveRequest(route, method string, status int, took time.Duration) {
	RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(route, method).Observe(took.Seconds())
}

// ObserveAction records one finished action.
func ObserveAction(action string, started time.Time, err error) {
	outcome := "fulfilled"
	if err != nil {
		outcome = "rejected"
	}
	ActionsTotal.WithLabelValues(action, outcome).Inc()
	ActionDuration.WithLabelValues(action).Observe(time.Since(started).Seconds())
}
