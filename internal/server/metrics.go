package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts handled requests.
	// Labels: method, route (the matched route pattern), status
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wiki",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total http requests by route and status",
	}, []string{"method", "route", "status"})

	// requestDuration measures request latency.
	// Labels: method, route
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wiki",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Http request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route"})
)

func observeRequest(method, route string, status int, d time.Duration) {
	requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
