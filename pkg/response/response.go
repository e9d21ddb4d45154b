package response

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WebhookAck is the body returned to the vendor for every callback.
type WebhookAck struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	ReceivedAt string `json:"receivedAt,omitempty"`
	Error      string `json:"error,omitempty"`
}

func Ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
	})
}

func OkWithMessage(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Success: false,
		Error:   "Invalid or missing API key",
	})
}

func NotFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{
		Success: false,
		Error:   message,
	})
}

func InternalServerError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func Conflict(c echo.Context, err error) error {
	return c.JSON(http.StatusConflict, ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// BadGateway reports a failure of the upstream vendor API.
func BadGateway(c echo.Context, err error) error {
	return c.JSON(http.StatusBadGateway, ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func ServiceUnavailable(c echo.Context, err error) error {
	return c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// WebhookReceived acknowledges a callback. The vendor always gets a 200 so it
// never retries or disables the webhook.
func WebhookReceived(c echo.Context, receivedAt time.Time) error {
	return c.JSON(http.StatusOK, WebhookAck{
		Success:    true,
		Message:    "Webhook received",
		ReceivedAt: receivedAt.UTC().Format(time.RFC3339Nano),
	})
}

func WebhookFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusOK, WebhookAck{
		Success: false,
		Error:   err.Error(),
	})
}
