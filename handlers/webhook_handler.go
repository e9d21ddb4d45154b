package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/internal/service"
	"github.com/onurcolak/blast-tracker/pkg/logger"
	"github.com/onurcolak/blast-tracker/pkg/response"
)

const (
	webhookPath   = "/api/webhook/wsapme"
	vendorDocsURL = "https://api.wsapme.com/doc/start.php"

	maxWebhookBody = 1 << 20
)

var errUnsupportedPayload = errors.New("webhook payload is neither a JSON object nor form data")

type WebhookHandler struct {
	service *service.WebhookService
}

func NewWebhookHandler(service *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

type EventsResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Count   int                   `json:"count"`
	Events  []domain.WebhookEvent `json:"events"`
}

// Receive godoc
// @Summary Receive a WSAPME webhook
// @Description Stores the callback and applies status updates and replies to the ledger. Always answers 200.
// @Tags webhook
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} response.WebhookAck
// @Router /api/webhook/wsapme [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	payload, err := readPayload(c)
	if err != nil {
		logger.Errorf("Error processing webhook: %v", err)
		return response.WebhookFailed(c, err)
	}

	event := h.service.Ingest(c.Request().Context(), payload, flattenHeaders(c.Request().Header))

	return response.WebhookReceived(c, event.Timestamp)
}

// Verify godoc
// @Summary Webhook endpoint check
// @Description Lets the vendor (or a human) confirm the receiver is reachable
// @Tags webhook
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/webhook/wsapme [get]
func (h *WebhookHandler) Verify(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message":       "WSAPME Webhook endpoint is active",
		"endpoint":      webhookPath,
		"method":        http.MethodPost,
		"documentation": vendorDocsURL,
	})
}

// ListEvents godoc
// @Summary List stored webhook events
// @Description Returns stored events newest first. With clear=true the store is emptied instead.
// @Tags webhook
// @Produce json
// @Param clear query bool false "Clear the store"
// @Success 200 {object} EventsResponse
// @Router /api/webhook/events [get]
func (h *WebhookHandler) ListEvents(c echo.Context) error {
	if c.QueryParam("clear") == "true" {
		return h.ClearEvents(c)
	}

	events := h.service.Events()
	return c.JSON(http.StatusOK, EventsResponse{
		Success: true,
		Count:   len(events),
		Events:  events,
	})
}

// ClearEvents godoc
// @Summary Clear stored webhook events
// @Tags webhook
// @Produce json
// @Success 200 {object} EventsResponse
// @Router /api/webhook/events [delete]
func (h *WebhookHandler) ClearEvents(c echo.Context) error {
	h.service.Clear()
	logger.Infof("Webhook events cleared")

	return c.JSON(http.StatusOK, EventsResponse{
		Success: true,
		Message: "Webhook events cleared",
		Events:  []domain.WebhookEvent{},
	})
}

// readPayload accepts a JSON object or form-encoded fields.
func readPayload(c echo.Context) (map[string]any, error) {
	req := c.Request()

	body, err := io.ReadAll(io.LimitReader(req.Body, maxWebhookBody))
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil && payload != nil {
		return payload, nil
	}

	ctype := req.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationForm) && !strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		return nil, errUnsupportedPayload
	}

	req.Body = io.NopCloser(bytes.NewReader(body))
	form, err := c.FormParams()
	if err != nil {
		return nil, err
	}

	payload = make(map[string]any, len(form))
	for key, values := range form {
		if len(values) == 1 {
			payload[key] = values[0]
			continue
		}
		list := make([]any, len(values))
		for i, v := range values {
			list[i] = v
		}
		payload[key] = list
	}
	return payload, nil
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key, values := range h {
		if len(values) > 0 {
			out[strings.ToLower(key)] = values[0]
		}
	}
	return out
}
