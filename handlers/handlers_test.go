package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/blast-tracker/environments"
	"github.com/onurcolak/blast-tracker/internal/poller"
	"github.com/onurcolak/blast-tracker/internal/service"
	"github.com/onurcolak/blast-tracker/internal/store"
	"github.com/onurcolak/blast-tracker/pkg/validator"
	"github.com/onurcolak/blast-tracker/pkg/wsapme"
)

// vendorStub answers every WSAPME call with the same status and body.
func vendorStub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newMessageService(baseURL string) *service.MessageService {
	cfg := environments.WSAPMEConfig{
		APIBaseURL:     baseURL,
		MasterBaseURL:  baseURL,
		UserToken:      "token",
		DeviceID:       "5850",
		DefaultMessage: "default text",
	}
	return service.NewMessageService(wsapme.NewClient(cfg), cfg)
}

// idlePoller never reaches its first check within a test.
func idlePoller(t *testing.T, svc *service.MessageService) *poller.Poller {
	t.Helper()

	p := poller.NewPoller(svc, environments.PollerConfig{
		FirstCheckDelay: time.Hour,
		Interval:        time.Hour,
		MaxFailures:     3,
	})
	t.Cleanup(func() { _ = p.Stop() })
	return p
}

func newWebhookService() *service.WebhookService {
	return service.NewWebhookService(store.NewWebhookStore(10))
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	return e
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to unmarshal response body %q: %v", rec.Body.String(), err)
	}
}

