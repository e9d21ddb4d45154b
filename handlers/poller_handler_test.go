package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onurcolak/blast-tracker/internal/poller"
	"github.com/onurcolak/blast-tracker/pkg/response"
)

type pollerEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    poller.Status `json:"data"`
}

func TestPollerStatus_Idle(t *testing.T) {
	svc := newMessageService("http://127.0.0.1:0")
	h := NewPollerHandler(idlePoller(t, svc), context.Background())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/poller/status", nil)
	rec := httptest.NewRecorder()
	if err := h.GetPollerStatus(newEcho().NewContext(req, rec)); err != nil {
		t.Fatalf("GetPollerStatus returned error: %v", err)
	}

	var resp pollerEnvelope
	decode(t, rec, &resp)
	if resp.Data.State != poller.StateIdle || resp.Data.Running {
		t.Fatalf("expected idle poller, got %+v", resp.Data)
	}
}

func TestPollerStop_WhenIdle(t *testing.T) {
	svc := newMessageService("http://127.0.0.1:0")
	h := NewPollerHandler(idlePoller(t, svc), context.Background())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/poller/stop", nil)
	rec := httptest.NewRecorder()
	if err := h.StopPoller(newEcho().NewContext(req, rec)); err != nil {
		t.Fatalf("StopPoller returned error: %v", err)
	}

	var resp pollerEnvelope
	decode(t, rec, &resp)
	if rec.Code != http.StatusOK || resp.Message != "Poller is already stopped" {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}
}

func TestPollerStart_ThenConflictThenStop(t *testing.T) {
	svc := newMessageService("http://127.0.0.1:0")
	p := idlePoller(t, svc)
	h := NewPollerHandler(p, context.Background())
	e := newEcho()

	body := `{"messageId": "3EB0AA", "to": "+6281234567890"}`

	c, rec := postJSON(e, "/api/v1/poller/start", body)
	if err := h.StartPoller(c); err != nil {
		t.Fatalf("StartPoller returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var started pollerEnvelope
	decode(t, rec, &started)
	if started.Data.State != poller.StateWaitingFirstCheck || started.Data.MessageID != "3EB0AA" {
		t.Fatalf("unexpected status after start %+v", started.Data)
	}

	c, rec = postJSON(e, "/api/v1/poller/start", body)
	if err := h.StartPoller(c); err != nil {
		t.Fatalf("StartPoller returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for second start, got %d", rec.Code)
	}

	c, rec = postJSON(e, "/api/v1/poller/stop", "")
	if err := h.StopPoller(c); err != nil {
		t.Fatalf("StopPoller returned error: %v", err)
	}

	var stopped pollerEnvelope
	decode(t, rec, &stopped)
	if stopped.Message != "Poller stopped successfully" || stopped.Data.State != poller.StateStopped {
		t.Fatalf("unexpected stop response %+v", stopped)
	}
}

func TestPollerStart_RequiresMessageID(t *testing.T) {
	h := NewPollerHandler(nil, context.Background())

	c, rec := postJSON(newEcho(), "/api/v1/poller/start", `{"to": "+6281234567890"}`)
	if err := h.StartPoller(c); err != nil {
		t.Fatalf("StartPoller returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp response.ErrorResponse
	decode(t, rec, &resp)
	if resp.Success {
		t.Fatal("expected success=false")
	}
}
