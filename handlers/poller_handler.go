package handlers

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/blast-tracker/internal/poller"
	"github.com/onurcolak/blast-tracker/pkg/response"
	"github.com/onurcolak/blast-tracker/pkg/validator"
)

type PollerHandler struct {
	poller *poller.Poller
	ctx    context.Context
}

type StartPollerRequest struct {
	MessageID   string         `json:"messageId" validate:"required"`
	To          string         `json:"to,omitempty" validate:"omitempty,msisdn"`
	JID         string         `json:"jid,omitempty"`
	MessageData map[string]any `json:"messageData,omitempty"`
}

func NewPollerHandler(p *poller.Poller, ctx context.Context) *PollerHandler {
	return &PollerHandler{
		poller: p,
		ctx:    ctx,
	}
}

// StartPoller godoc
// @Summary Start polling a message
// @Description Polls WSAPME for the delivery status of an already sent message until it is delivered, fails repeatedly or is stopped
// @Tags poller
// @Accept json
// @Produce json
// @Param x-api-key header string false "Dashboard API key (when configured)"
// @Param request body StartPollerRequest true "Message to poll"
// @Success 200 {object} response.SuccessResponse{data=poller.Status}
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Router /api/v1/poller/start [post]
func (h *PollerHandler) StartPoller(c echo.Context) error {
	var req StartPollerRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	err := h.poller.Watch(h.ctx, poller.WatchRequest{
		MessageID:   req.MessageID,
		To:          req.To,
		JID:         req.JID,
		MessageData: req.MessageData,
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.OkWithMessage(c, "Poller started successfully", h.poller.GetStatus())
}

// StopPoller godoc
// @Summary Stop the poller
// @Description Cancels the active poll loop
// @Tags poller
// @Accept json
// @Produce json
// @Param x-api-key header string false "Dashboard API key (when configured)"
// @Success 200 {object} response.SuccessResponse{data=poller.Status}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/poller/stop [post]
func (h *PollerHandler) StopPoller(c echo.Context) error {
	if err := h.poller.Stop(); err != nil {
		if errors.Is(err, poller.ErrNotRunning) {
			return response.OkWithMessage(c, "Poller is already stopped", h.poller.GetStatus())
		}
		return response.InternalServerError(c, err)
	}

	return response.OkWithMessage(c, "Poller stopped successfully", h.poller.GetStatus())
}

// GetPollerStatus godoc
// @Summary Get poller status
// @Description Returns the state, failure counter and check history of the poller
// @Tags poller
// @Accept json
// @Produce json
// @Param x-api-key header string false "Dashboard API key (when configured)"
// @Success 200 {object} response.SuccessResponse{data=poller.Status}
// @Router /api/v1/poller/status [get]
func (h *PollerHandler) GetPollerStatus(c echo.Context) error {
	return response.Ok(c, h.poller.GetStatus())
}
