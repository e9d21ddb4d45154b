package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/internal/poller"
	"github.com/onurcolak/blast-tracker/internal/service"
	"github.com/onurcolak/blast-tracker/pkg/response"
	"github.com/onurcolak/blast-tracker/pkg/wsapme"
)

// respondError maps service and vendor errors to HTTP responses.
func respondError(c echo.Context, err error) error {
	var apiErr *wsapme.APIError

	switch {
	case errors.Is(err, service.ErrRecipientRequired),
		errors.Is(err, service.ErrMessageIDRequired),
		errors.Is(err, service.ErrJIDRequired),
		errors.Is(err, wsapme.ErrRecipientNotAllowed):
		return response.BadRequest(c, err)

	case errors.Is(err, domain.ErrRecipientNotFound):
		return response.NotFound(c, err.Error())

	case errors.Is(err, poller.ErrAlreadyRunning):
		return response.Conflict(c, err)

	case errors.Is(err, service.ErrLedgerDisabled),
		errors.Is(err, service.ErrCacheDisabled):
		return response.ServiceUnavailable(c, err)

	case errors.As(err, &apiErr),
		errors.Is(err, wsapme.ErrMalformedResponse),
		errors.Is(err, service.ErrSendRejected),
		errors.Is(err, poller.ErrNoMessageID):
		return response.BadGateway(c, err)

	default:
		return response.InternalServerError(c, err)
	}
}
