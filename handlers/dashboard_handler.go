package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/blast-tracker/internal/dashboard"
	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/internal/funnel"
	"github.com/onurcolak/blast-tracker/internal/poller"
	"github.com/onurcolak/blast-tracker/internal/service"
)

type DashboardHandler struct {
	messages       *service.MessageService
	webhooks       *service.WebhookService
	poller         *poller.Poller
	defaultMessage string
}

func NewDashboardHandler(
	messages *service.MessageService,
	webhooks *service.WebhookService,
	p *poller.Poller,
	defaultMessage string,
) *DashboardHandler {
	return &DashboardHandler{
		messages:       messages,
		webhooks:       webhooks,
		poller:         p,
		defaultMessage: defaultMessage,
	}
}

type BlastDataResponse struct {
	Success bool                `json:"success"`
	Data    domain.BlastMetrics `json:"data"`
	Stages  []funnel.Stage      `json:"stages"`
	Source  string              `json:"source"`
}

// BlastData godoc
// @Summary Get blast funnel data
// @Description Returns funnel counts from the ledger, or placeholder numbers when no ledger is available
// @Tags dashboard
// @Produce json
// @Success 200 {object} BlastDataResponse
// @Router /api/blast-data [get]
func (h *DashboardHandler) BlastData(c echo.Context) error {
	metrics, live := h.messages.BlastMetrics(c.Request().Context())

	source := "placeholder"
	if live {
		source = "ledger"
	}

	return c.JSON(http.StatusOK, BlastDataResponse{
		Success: true,
		Data:    metrics,
		Stages:  funnel.Build(metrics),
		Source:  source,
	})
}

func (h *DashboardHandler) Index(c echo.Context) error {
	metrics, live := h.messages.BlastMetrics(c.Request().Context())

	return c.Render(http.StatusOK, dashboard.IndexPage, dashboard.IndexData{
		Stages:         funnel.Build(metrics),
		Live:           live,
		LedgerEnabled:  h.messages.LedgerEnabled(),
		Poller:         h.poller.GetStatus(),
		DefaultMessage: h.defaultMessage,
	})
}

func (h *DashboardHandler) WebhookEvents(c echo.Context) error {
	return c.Render(http.StatusOK, dashboard.WebhookEventsPage, dashboard.EventsData{
		Events: h.webhooks.Events(),
	})
}
