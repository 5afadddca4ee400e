package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNilExporterIsSafe(t *testing.T) {
	var e *Exporter

	// Metrics are optional; a nil exporter must be a no-op, not a panic.
	e.RecordRequest("general", time.Millisecond)
	e.RecordEmailDelivery("smtp", true)
	e.RecordAgentFallback("createPortfolio")
}

func TestExporterServesMetrics(t *testing.T) {
	e := NewExporter(DefaultConfig())
	e.RecordRequest("portfolio_creation", 5*time.Millisecond)
	e.RecordEmailDelivery("simulated", true)
	e.RecordAgentFallback("sendEmail")

	rec := httptest.NewRecorder()
	e.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, metric := range []string{
		"finsage_assistant_requests_total",
		"finsage_assistant_request_latency_seconds",
		"finsage_assistant_email_deliveries_total",
		"finsage_assistant_agent_fallbacks_total",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("missing metric %s", metric)
		}
	}
}
