package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/internal/poller"
	"github.com/onurcolak/blast-tracker/internal/service"
	"github.com/onurcolak/blast-tracker/pkg/response"
	"github.com/onurcolak/blast-tracker/pkg/validator"
)

type MessageHandler struct {
	service *service.MessageService
	poller  *poller.Poller
	ctx     context.Context
}

// ctx outlives requests and bounds poll loops started with track=true.
func NewMessageHandler(service *service.MessageService, p *poller.Poller, ctx context.Context) *MessageHandler {
	return &MessageHandler{service: service, poller: p, ctx: ctx}
}

type SendMessageRequest struct {
	To      string `json:"to" validate:"required,msisdn"`
	Message string `json:"message,omitempty" validate:"omitempty,max=4096"`
	Track   bool   `json:"track,omitempty"`
}

type CheckStatusRequest struct {
	MessageID   string         `json:"messageId" validate:"required"`
	To          string         `json:"to,omitempty" validate:"omitempty,msisdn"`
	JID         string         `json:"jid,omitempty"`
	MessageData map[string]any `json:"messageData,omitempty"`
}

type SendMessageResponse struct {
	MessageID   string                    `json:"messageId,omitempty"`
	JID         string                    `json:"jid"`
	MessageData map[string]any            `json:"messageData,omitempty"`
	Result      *domain.SendMessageResult `json:"result"`
	Tracking    bool                      `json:"tracking"`
}

// SendMessage godoc
// @Summary Send a test message
// @Description Sends a WhatsApp message through WSAPME. With track=true the status poller follows the returned message id.
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string false "Dashboard API key (when configured)"
// @Param request body SendMessageRequest true "Recipient and optional message text"
// @Success 200 {object} response.SuccessResponse{data=SendMessageResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/messages/send [post]
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	var (
		outcome *service.SendOutcome
		err     error
	)
	if req.Track {
		outcome, err = h.poller.Track(h.ctx, poller.TrackRequest{To: req.To, Message: req.Message})
	} else {
		outcome, err = h.service.SendTestMessage(c.Request().Context(), req.To, req.Message)
	}
	if err != nil {
		return respondError(c, err)
	}

	return response.OkWithMessage(c, "Message sent", SendMessageResponse{
		MessageID:   outcome.Sent.MessageID,
		JID:         outcome.Sent.JID,
		MessageData: outcome.Sent.MessageData,
		Result:      outcome.Result,
		Tracking:    req.Track,
	})
}

// CheckStatus godoc
// @Summary Check message status
// @Description Queries WSAPME message info once. The JID is resolved from jid, messageData.key.remoteJid, the cached send, then to.
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string false "Dashboard API key (when configured)"
// @Param request body CheckStatusRequest true "Message to check"
// @Success 200 {object} response.SuccessResponse{data=domain.MessageStatusResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/messages/status [post]
func (h *MessageHandler) CheckStatus(c echo.Context) error {
	var req CheckStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	result, err := h.service.CheckStatus(c.Request().Context(), domain.StatusQuery{
		MessageID:   req.MessageID,
		To:          req.To,
		JID:         req.JID,
		MessageData: req.MessageData,
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, result)
}

// GetCachedMessages godoc
// @Summary Get cached sends from Redis
// @Description Returns sent messages cached in Valkey, keyed by message id
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string false "Dashboard API key (when configured)"
// @Success 200 {object} response.SuccessResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/v1/messages/cached [get]
func (h *MessageHandler) GetCachedMessages(c echo.Context) error {
	cached, err := h.service.GetCachedMessages(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, cached)
}

// CloseRecipient godoc
// @Summary Mark a recipient closed
// @Description Moves a tracked recipient to the last funnel stage
// @Tags recipients
// @Accept json
// @Produce json
// @Param x-api-key header string false "Dashboard API key (when configured)"
// @Param messageId path string true "Message ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/v1/recipients/{messageId}/close [post]
func (h *MessageHandler) CloseRecipient(c echo.Context) error {
	messageID := c.Param("messageId")

	if err := h.service.CloseRecipient(c.Request().Context(), messageID); err != nil {
		return respondError(c, err)
	}

	return response.OkWithMessage(c, "Recipient closed", map[string]any{
		"messageId": messageID,
	})
}

// GetRecipient godoc
// @Summary Get a tracked recipient
// @Description Returns the delivery ledger row for one sent message
// @Tags recipients
// @Accept json
// @Produce json
// @Param x-api-key header string false "Dashboard API key (when configured)"
// @Param messageId path string true "Message ID"
// @Success 200 {object} response.SuccessResponse{data=domain.Recipient}
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/v1/recipients/{messageId} [get]
func (h *MessageHandler) GetRecipient(c echo.Context) error {
	recipient, err := h.service.GetRecipient(c.Request().Context(), c.Param("messageId"))
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, recipient)
}

// ListDevices godoc
// @Summary List devices
// @Description Lists the WSAPME devices on the account
// @Tags devices
// @Accept json
// @Produce json
// @Param x-api-key header string false "Dashboard API key (when configured)"
// @Success 200 {object} response.SuccessResponse{data=domain.DeviceResult}
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/devices [get]
func (h *MessageHandler) ListDevices(c echo.Context) error {
	result, err := h.service.ListDevices(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, result)
}

// GetDeviceInfo godoc
// @Summary Get device info
// @Description Returns WSAPME info for one device; "default" selects the configured device
// @Tags devices
// @Accept json
// @Produce json
// @Param x-api-key header string false "Dashboard API key (when configured)"
// @Param id path string true "Device ID"
// @Success 200 {object} response.SuccessResponse{data=domain.DeviceResult}
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/devices/{id} [get]
func (h *MessageHandler) GetDeviceInfo(c echo.Context) error {
	deviceID := c.Param("id")
	if deviceID == "default" {
		deviceID = ""
	}

	result, err := h.service.DeviceInfo(c.Request().Context(), deviceID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, result)
}
