package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the HTTP layer and the
// request and swap workflows. A nil *Metrics is valid and records nothing.
type Metrics struct {
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	swapTransitions *prometheus.CounterVec
	decisions       *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	outbox          *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ems_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ems_http_request_duration_seconds",
		Help:    "HTTP request latency per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	swaps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ems_swap_transitions_total",
		Help: "Shift swap status transitions.",
	}, []string{"from", "to"})
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ems_request_decisions_total",
		Help: "HOD decisions on requests by type and outcome.",
	}, []string{"type", "status"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ems_notifications_total",
		Help: "Notification dispatch results.",
	}, []string{"result"})
	outbox := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ems_outbox_events_total",
		Help: "Outbox events handled by the worker per topic and result.",
	}, []string{"topic", "result"})

	registry.MustRegister(requests, duration, swaps, decisions, notifications, outbox)

	return &Metrics{
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		swapTransitions: swaps,
		decisions:       decisions,
		notifications:   notifications,
		outbox:          outbox,
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and latency per matched gin route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) SwapTransition(from, to string) {
	if m == nil {
		return
	}
	m.swapTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) RequestDecision(requestType, status string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(requestType, status).Inc()
}

func (m *Metrics) NotificationSent() {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues("sent").Inc()
}

func (m *Metrics) NotificationFailed() {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues("failed").Inc()
}

func (m *Metrics) OutboxResult(topic string, ok bool) {
	if m == nil {
		return
	}
	result := "sent"
	if !ok {
		result = "failed"
	}
	m.outbox.WithLabelValues(topic, result).Inc()
}
