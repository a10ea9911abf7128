// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "clientive"

// Metrics groups the server collectors.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	feedEvents      prometheus.Counter
	feedErrors      prometheus.Counter
	supportRequests *prometheus.CounterVec
	clientsCreated  *prometheus.CounterVec
}

// MustNew constructs Metrics and registers them with reg. Collectors that
// are already registered are reused, so repeated construction against the
// same registry is safe.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests by route and status.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		feedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calendar",
			Name:      "feed_events_total",
			Help:      "Events written to calendar feeds.",
		}),
		feedErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calendar",
			Name:      "feed_errors_total",
			Help:      "Calendar feed requests answered with an error calendar.",
		}),
		supportRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "support",
			Name:      "requests_total",
			Help:      "Support form submissions by outcome.",
		}, []string{"outcome"}),
		clientsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "clients",
			Name:      "created_total",
			Help:      "Client creation attempts by result.",
		}, []string{"result"}),
	}

	m.requestDuration = register(reg, m.requestDuration)
	m.feedEvents = register(reg, m.feedEvents)
	m.feedErrors = register(reg, m.feedErrors)
	m.supportRequests = register(reg, m.supportRequests)
	m.clientsCreated = register(reg, m.clientsCreated)
	return m
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// FeedServed records a successful feed with n events.
func (m *Metrics) FeedServed(n int) {
	if m == nil {
		return
	}
	m.feedEvents.Add(float64(n))
}

// FeedFailed records a feed answered with the error calendar.
func (m *Metrics) FeedFailed() {
	if m == nil {
		return
	}
	m.feedErrors.Inc()
}

// SupportRequest records a support submission outcome
// ("emailed", "logged", "invalid", "limited").
func (m *Metrics) SupportRequest(outcome string) {
	if m == nil {
		return
	}
	m.supportRequests.WithLabelValues(outcome).Inc()
}

// ClientCreated records a creation attempt ("ok" or "error").
func (m *Metrics) ClientCreated(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.clientsCreated.WithLabelValues(result).Inc()
}
