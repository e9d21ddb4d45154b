package wsapme

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/onurcolak/blast-tracker/environments"
	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/internal/metrics"
	"github.com/onurcolak/blast-tracker/pkg/logger"
)

const tokenHeader = "x-wsapme-token"

const (
	opSendMessage = "send_message"
	opMessageInfo = "message_info"
	opListDevices = "list_devices"
	opDeviceInfo  = "device_info"
)

type Client struct {
	httpClient    *resty.Client
	apiBaseURL    string
	masterBaseURL string
	token         string
	allowed       map[string]struct{}
}

// NewClient builds a vendor client. Requests are never retried; the poller
// owns retry policy.
func NewClient(cfg environments.WSAPMEConfig) *Client {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedRecipients))
	for _, number := range cfg.AllowedRecipients {
		if n := NormalizePhone(number); n != "" {
			allowed[n] = struct{}{}
		}
	}

	return &Client{
		httpClient:    client,
		apiBaseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		masterBaseURL: strings.TrimRight(cfg.MasterBaseURL, "/"),
		token:         cfg.UserToken,
		allowed:       allowed,
	}
}

type rawResponse struct {
	statusCode int
	body       []byte
}

func (r *rawResponse) ok() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

func (c *Client) do(ctx context.Context, operation, method, url string, body any) (*rawResponse, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader(tokenHeader, c.token)
	if body != nil {
		req.SetBody(body)
	}

	startTime := time.Now()
	resp, err := req.Execute(method, url)
	duration := time.Since(startTime)

	metrics.VendorRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())

	if err != nil {
		metrics.VendorRequestsTotal.WithLabelValues(operation, "transport_error").Inc()
		return nil, fmt.Errorf("wsapme %s: failed to send request: %w", operation, err)
	}

	logger.Infof("WSAPME %s %s completed in %v (status: %d)", method, url, duration, resp.StatusCode())

	raw := &rawResponse{statusCode: resp.StatusCode(), body: resp.Body()}
	if !raw.ok() {
		metrics.VendorRequestsTotal.WithLabelValues(operation, "http_error").Inc()
		return nil, &APIError{Operation: operation, StatusCode: raw.statusCode, Body: string(raw.body)}
	}

	metrics.VendorRequestsTotal.WithLabelValues(operation, "ok").Inc()
	return raw, nil
}

// SendMessage posts a text message. When the vendor answers with something
// other than JSON, the message id is recovered from the raw text if possible.
func (c *Client) SendMessage(ctx context.Context, req domain.SendMessageRequest) (*domain.SendMessageResult, error) {
	if err := c.checkRecipient(req.To); err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, opSendMessage, http.MethodPost, c.apiBaseURL+"/v1/sendMessage2", req)
	if err != nil {
		return nil, err
	}

	doc, ok := decodeObject(raw.body)
	if !ok {
		id, found := ExtractMessageID(string(raw.body))
		if !found {
			return nil, malformed(opSendMessage, string(raw.body))
		}
		logger.Warnf("WSAPME send returned non-JSON body, recovered message id %s", id)
		return &domain.SendMessageResult{
			Success:   true,
			Message:   "Message sent (non-JSON response)",
			MessageID: id,
			Data:      map[string]any{"raw": snippet(string(raw.body))},
		}, nil
	}

	return normalizeSend(doc, raw.ok()), nil
}

// GetMessageInfo asks the master server for the current state of a message.
func (c *Client) GetMessageInfo(ctx context.Context, req domain.MessageInfoRequest) (*domain.MessageStatusResult, error) {
	raw, err := c.do(ctx, opMessageInfo, http.MethodPost, c.masterBaseURL+"/api/messageInfo", req)
	if err != nil {
		return nil, err
	}

	doc, ok := decodeObject(raw.body)
	if !ok {
		return nil, malformed(opMessageInfo, string(raw.body))
	}

	return normalizeStatus(doc), nil
}

func (c *Client) ListDevices(ctx context.Context) (*domain.DeviceResult, error) {
	endpoint := c.apiBaseURL + "/v1/devices"
	raw, err := c.do(ctx, opListDevices, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	doc, ok := decodeObject(raw.body)
	if !ok {
		return nil, malformed(opListDevices, string(raw.body))
	}

	return normalizeDevice(doc, raw.ok(), endpoint), nil
}

func (c *Client) GetDeviceInfo(ctx context.Context, deviceID string) (*domain.DeviceResult, error) {
	if deviceID == "" {
		return nil, errors.New("device id is required")
	}

	endpoint := c.apiBaseURL + "/v1/info"
	raw, err := c.do(ctx, opDeviceInfo, http.MethodPost, endpoint, map[string]string{"device": deviceID})
	if err != nil {
		return nil, err
	}

	doc, ok := decodeObject(raw.body)
	if !ok {
		return nil, malformed(opDeviceInfo, string(raw.body))
	}

	return normalizeDevice(doc, raw.ok(), endpoint), nil
}

func (c *Client) checkRecipient(to string) error {
	if len(c.allowed) == 0 {
		return nil
	}
	if _, ok := c.allowed[NormalizePhone(to)]; !ok {
		return fmt.Errorf("%w: %s", ErrRecipientNotAllowed, to)
	}
	return nil
}

func (c *Client) GetAPIBaseURL() string {
	return c.apiBaseURL
}
