package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/onurcolak/blast-tracker/internal/dashboard"
	"github.com/onurcolak/blast-tracker/internal/domain"
)

func TestBlastData_Placeholder(t *testing.T) {
	svc := newMessageService("http://127.0.0.1:0")
	h := NewDashboardHandler(svc, newWebhookService(), idlePoller(t, svc), "")

	req := httptest.NewRequest(http.MethodGet, "/api/blast-data", nil)
	rec := httptest.NewRecorder()
	if err := h.BlastData(newEcho().NewContext(req, rec)); err != nil {
		t.Fatalf("BlastData returned error: %v", err)
	}

	var resp BlastDataResponse
	decode(t, rec, &resp)

	if !resp.Success || resp.Source != "placeholder" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Data != domain.PlaceholderMetrics() {
		t.Errorf("expected placeholder metrics, got %+v", resp.Data)
	}
	if len(resp.Stages) != 5 || resp.Stages[0].Percentage != 100 {
		t.Errorf("unexpected stages %+v", resp.Stages)
	}
}

func TestDashboardPages_Render(t *testing.T) {
	renderer, err := dashboard.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}

	svc := newMessageService("http://127.0.0.1:0")
	webhooks := newWebhookService()
	h := NewDashboardHandler(svc, webhooks, idlePoller(t, svc), "default text")

	e := newEcho()
	e.Renderer = renderer

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := h.Index(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Index returned error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Funnel") {
		t.Fatalf("unexpected index page %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No ledger configured") {
		t.Errorf("expected no-ledger notice on index page")
	}

	req = httptest.NewRequest(http.MethodGet, "/webhook-events", nil)
	rec = httptest.NewRecorder()
	if err := h.WebhookEvents(e.NewContext(req, rec)); err != nil {
		t.Fatalf("WebhookEvents returned error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "No webhook events received yet.") {
		t.Fatalf("expected empty events page, got %s", rec.Body.String())
	}
}
