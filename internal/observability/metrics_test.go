package observability_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ashmit12092000/ems/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/swaps/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/swaps/123", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `ems_http_requests_total{code="204",method="GET",route="/api/v1/swaps/:id"} 1`), body)
}

func TestMetrics_WorkflowCounters(t *testing.T) {
	m := observability.NewMetrics()
	m.SwapTransition("pending_target_approval", "pending_hod_approval")
	m.RequestDecision("leave", "approved")
	m.NotificationSent()
	m.NotificationFailed()
	m.OutboxResult("ems.request.status_changed.v1", true)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()

	for _, want := range []string{
		`ems_swap_transitions_total{from="pending_target_approval",to="pending_hod_approval"} 1`,
		`ems_request_decisions_total{status="approved",type="leave"} 1`,
		`ems_notifications_total{result="failed"} 1`,
		`ems_notifications_total{result="sent"} 1`,
		`ems_outbox_events_total{result="sent",topic="ems.request.status_changed.v1"} 1`,
	} {
		assert.Contains(t, body, want)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.SwapTransition("a", "b")
		m.RequestDecision("leave", "approved")
		m.NotificationFailed()
		m.OutboxResult("t", false)
	})

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
