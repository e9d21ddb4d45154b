package wsapme

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onurcolak/blast-tracker/environments"
	"github.com/onurcolak/blast-tracker/internal/domain"
)

type recordedRequest struct {
	method string
	path   string
	token  string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, body string, record *recordedRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if record != nil {
			record.method = r.Method
			record.path = r.URL.Path
			record.token = r.Header.Get(tokenHeader)
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &record.body)
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *Client {
	return NewClient(environments.WSAPMEConfig{
		APIBaseURL:    baseURL,
		MasterBaseURL: baseURL,
		UserToken:     "secret-token",
	})
}

func TestSendMessage_JSONResponse(t *testing.T) {
	var rec recordedRequest
	srv := newTestServer(t, http.StatusOK, `{"success":true,"message":"queued","data":{"key":{"id":"3EB0ABC"}}}`, &rec)

	c := newTestClient(srv.URL)
	res, err := c.SendMessage(context.Background(), domain.SendMessageRequest{Device: "5850", To: "628123", Message: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Success {
		t.Errorf("expected success")
	}
	if res.MessageID != "3EB0ABC" {
		t.Errorf("expected messageId 3EB0ABC, got %q", res.MessageID)
	}
	if res.Message != "queued" {
		t.Errorf("expected message 'queued', got %q", res.Message)
	}
	if rec.method != http.MethodPost || rec.path != "/v1/sendMessage2" {
		t.Errorf("unexpected request %s %s", rec.method, rec.path)
	}
	if rec.token != "secret-token" {
		t.Errorf("expected token header, got %q", rec.token)
	}
	if rec.body["to"] != "628123" || rec.body["device"] != "5850" {
		t.Errorf("unexpected request body: %v", rec.body)
	}
}

func TestSendMessage_ExplicitFailureOn2xx(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"success":false,"message":"device offline"}`, nil)

	res, err := newTestClient(srv.URL).SendMessage(context.Background(), domain.SendMessageRequest{To: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Fatalf("expected success=false when body says so")
	}
}

func TestSendMessage_NonJSONWithID(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `OK message_id=ABC-123 queued`, nil)

	res, err := newTestClient(srv.URL).SendMessage(context.Background(), domain.SendMessageRequest{To: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.MessageID != "ABC-123" {
		t.Fatalf("expected recovered id ABC-123, got %+v", res)
	}
}

func TestSendMessage_NonJSONWithoutID(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `<html>gateway</html>`, nil)

	_, err := newTestClient(srv.URL).SendMessage(context.Background(), domain.SendMessageRequest{To: "1"})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestSendMessage_Non2xx(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, `{"message":"bad token"}`, nil)

	_, err := newTestClient(srv.URL).SendMessage(context.Background(), domain.SendMessageRequest{To: "1"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Body != `{"message":"bad token"}` {
		t.Errorf("expected raw body to be kept, got %q", apiErr.Body)
	}
}

func TestSendMessage_MissingToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(environments.WSAPMEConfig{APIBaseURL: srv.URL})
	_, err := c.SendMessage(context.Background(), domain.SendMessageRequest{To: "1"})
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if called {
		t.Fatalf("expected no request without a token")
	}
}

func TestSendMessage_AllowList(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, _ = w.Write([]byte(`{"id":"x"}`))
	}))
	defer srv.Close()

	c := NewClient(environments.WSAPMEConfig{
		APIBaseURL:        srv.URL,
		UserToken:         "t",
		AllowedRecipients: []string{"+62 812-345"},
	})

	if _, err := c.SendMessage(context.Background(), domain.SendMessageRequest{To: "999"}); !errors.Is(err, ErrRecipientNotAllowed) {
		t.Fatalf("expected ErrRecipientNotAllowed, got %v", err)
	}
	if called {
		t.Fatalf("expected rejected recipient to skip the network call")
	}

	if _, err := c.SendMessage(context.Background(), domain.SendMessageRequest{To: "62812345"}); err != nil {
		t.Fatalf("expected normalized number to be allowed, got %v", err)
	}
}

func TestGetMessageInfo_Delivered(t *testing.T) {
	var rec recordedRequest
	srv := newTestServer(t, http.StatusOK, `{"data":{"messages":{"status":"DELIVERY_ACK"}}}`, &rec)

	res, err := newTestClient(srv.URL).GetMessageInfo(context.Background(), domain.MessageInfoRequest{
		IDDevice: "5850",
		JID:      "62812@s.whatsapp.net",
		Messages: domain.MessageInfoMessages{Key: domain.MessageKey{ID: "abc"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.path != "/api/messageInfo" {
		t.Errorf("expected /api/messageInfo, got %s", rec.path)
	}
	if rec.body["id_device"] != "5850" {
		t.Errorf("expected id_device in body, got %v", rec.body)
	}
	if !res.IsDelivered || !res.Success {
		t.Fatalf("expected delivered and success, got %+v", res)
	}
	if res.Status == nil || res.Status.Name != domain.AckDelivery {
		t.Fatalf("expected DELIVERY_ACK status, got %v", res.Status)
	}
}

func TestGetMessageInfo_NotYetDelivered(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"success":false,"status":"SERVER_ACK"}`, nil)

	res, err := newTestClient(srv.URL).GetMessageInfo(context.Background(), domain.MessageInfoRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsDelivered || res.Success {
		t.Fatalf("expected not delivered, got %+v", res)
	}
}

func TestGetMessageInfo_NonJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `not json "id": "abc"`, nil)

	_, err := newTestClient(srv.URL).GetMessageInfo(context.Background(), domain.MessageInfoRequest{})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestListDevices(t *testing.T) {
	var rec recordedRequest
	srv := newTestServer(t, http.StatusOK, `{"data":[{"id":"5850"}]}`, &rec)

	res, err := newTestClient(srv.URL).ListDevices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/v1/devices" {
		t.Errorf("unexpected request %s %s", rec.method, rec.path)
	}
	if !res.Success {
		t.Errorf("expected success on 2xx")
	}
	if res.Endpoint != srv.URL+"/v1/devices" {
		t.Errorf("unexpected endpoint %q", res.Endpoint)
	}
	if devices, ok := res.Data.([]any); !ok || len(devices) != 1 {
		t.Errorf("expected data to be the device list, got %#v", res.Data)
	}
}

func TestGetDeviceInfo(t *testing.T) {
	var rec recordedRequest
	srv := newTestServer(t, http.StatusOK, `{"success":true,"data":{"status":"connected"}}`, &rec)

	res, err := newTestClient(srv.URL).GetDeviceInfo(context.Background(), "5850")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.path != "/v1/info" || rec.body["device"] != "5850" {
		t.Errorf("unexpected request %s %v", rec.path, rec.body)
	}
	if !res.Success {
		t.Errorf("expected success")
	}
}

func TestGetDeviceInfo_MalformedBody(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `<html></html>`, nil)

	_, err := newTestClient(srv.URL).GetDeviceInfo(context.Background(), "5850")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestFormatJID(t *testing.T) {
	tests := map[string]string{
		"+62 812-345":          "62812345@s.whatsapp.net",
		"62812345":             "62812345@s.whatsapp.net",
		"62812@s.whatsapp.net": "62812@s.whatsapp.net",
	}
	for in, want := range tests {
		if got := FormatJID(in); got != want {
			t.Errorf("FormatJID(%q) = %q, want %q", in, got, want)
		}
	}
}
