package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/onurcolak/blast-tracker/handlers"
	"github.com/onurcolak/blast-tracker/internal/middlewares"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Webhook   *handlers.WebhookHandler
	Dashboard *handlers.DashboardHandler
	Message   *handlers.MessageHandler
	Poller    *handlers.PollerHandler
}

// RegisterRoutes registers the public pages and probes, the vendor webhook
// and the key-guarded API group.
func RegisterRoutes(e *echo.Echo, h Handlers, dashboardAPIKey string) {
	e.GET("/health", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// HTML dashboard
	e.GET("/", h.Dashboard.Index)
	e.GET("/webhook-events", h.Dashboard.WebhookEvents)

	// Vendor callbacks and debug probes
	webhook := e.Group("/api/webhook")
	webhook.GET("/wsapme", h.Webhook.Verify)
	webhook.POST("/wsapme", h.Webhook.Receive)
	webhook.GET("/events", h.Webhook.ListEvents)
	webhook.DELETE("/events", h.Webhook.ClearEvents)

	e.GET("/api/blast-data", h.Dashboard.BlastData)

	v1 := e.Group("/api/v1", middlewares.DashboardAuth(dashboardAPIKey))

	messages := v1.Group("/messages")
	messages.POST("/send", h.Message.SendMessage)
	messages.POST("/status", h.Message.CheckStatus)
	messages.GET("/cached", h.Message.GetCachedMessages)

	v1.GET("/recipients/:messageId", h.Message.GetRecipient)
	v1.POST("/recipients/:messageId/close", h.Message.CloseRecipient)

	v1.GET("/devices", h.Message.ListDevices)
	v1.GET("/devices/:id", h.Message.GetDeviceInfo)

	pollerGroup := v1.Group("/poller")
	pollerGroup.POST("/start", h.Poller.StartPoller)
	pollerGroup.POST("/stop", h.Poller.StopPoller)
	pollerGroup.GET("/status", h.Poller.GetPollerStatus)
}
