package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/onurcolak/blast-tracker/environments"
	"github.com/onurcolak/blast-tracker/handlers"
	"github.com/onurcolak/blast-tracker/internal/dashboard"
	"github.com/onurcolak/blast-tracker/internal/metrics"
	"github.com/onurcolak/blast-tracker/internal/middlewares"
	"github.com/onurcolak/blast-tracker/internal/poller"
	"github.com/onurcolak/blast-tracker/internal/repository"
	"github.com/onurcolak/blast-tracker/internal/service"
	"github.com/onurcolak/blast-tracker/internal/store"
	"github.com/onurcolak/blast-tracker/pkg/database"
	"github.com/onurcolak/blast-tracker/pkg/logger"
	"github.com/onurcolak/blast-tracker/pkg/redis"
	"github.com/onurcolak/blast-tracker/pkg/validator"
	"github.com/onurcolak/blast-tracker/pkg/wsapme"
	"github.com/onurcolak/blast-tracker/routes"

	_ "github.com/onurcolak/blast-tracker/docs" // swagger docs
)

// @title WSAPME Blast Tracker API
// @version 1.0
// @description Blast dashboard, webhook receiver and delivery status poller for the WSAPME WhatsApp API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /

// @schemes http https
func main() {
	cfg := environments.Load()
	logger.Init(cfg.Log.Level)

	logger.Infof("Starting WSAPME blast tracker...")

	if cfg.WSAPME.UserToken == "" {
		logger.Warnf("WSAPME_USER_TOKEN is not set, vendor calls will be rejected")
	}
	if cfg.Auth.DashboardAPIKey == "" {
		logger.Warnf("DASHBOARD_API_KEY is not set, /api/v1 is open")
	}

	metrics.Register()

	db := openLedger(cfg.Database)

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		client, err := redis.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Warnf("Redis not available, caching disabled: %v", err)
		} else {
			redisClient = client
		}
	}

	// Only enabled backends become options; a nil *T behind an interface
	// would look configured to the services.
	var opts []service.Option
	if db != nil {
		opts = append(opts, service.WithLedger(repository.NewRecipientRepository(db)))
	}
	if redisClient != nil {
		opts = append(opts, service.WithCache(redisClient))
	}

	vendor := wsapme.NewClient(cfg.WSAPME)
	logger.Infof("WSAPME API configured: %s (device %s)", vendor.GetAPIBaseURL(), cfg.WSAPME.DeviceID)

	messageService := service.NewMessageService(vendor, cfg.WSAPME, opts...)
	webhookService := service.NewWebhookService(store.NewWebhookStore(cfg.Store.Capacity), opts...)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	statusPoller := poller.NewPoller(messageService, cfg.Poller)

	renderer, err := dashboard.NewRenderer()
	if err != nil {
		logger.Fatalf("Failed to load dashboard templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.Renderer = renderer

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			middlewares.APIKeyHeader,
		},
	}))

	routes.RegisterRoutes(e, routes.Handlers{
		Health:    handlers.NewHealthHandler(db, redisClient),
		Webhook:   handlers.NewWebhookHandler(webhookService),
		Dashboard: handlers.NewDashboardHandler(messageService, webhookService, statusPoller, cfg.WSAPME.DefaultMessage),
		Message:   handlers.NewMessageHandler(messageService, statusPoller, ctx),
		Poller:    handlers.NewPollerHandler(statusPoller, ctx),
	}, cfg.Auth.DashboardAPIKey)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Dashboard available at http://localhost%s", addr)
		logger.Infof("Webhook URL: http://localhost%s/api/webhook/wsapme", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	cancel()

	if statusPoller.IsRunning() {
		logger.Infof("Stopping status poller...")
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()

		done := make(chan error, 1)
		go func() {
			done <- statusPoller.Stop()
		}()

		select {
		case err := <-done:
			if err != nil {
				logger.Errorf("Error stopping poller: %v", err)
			} else {
				logger.Infof("Poller stopped successfully")
			}
		case <-stopCtx.Done():
			logger.Warnf("Poller stop timeout, forcing shutdown")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Infof("HTTP server stopped successfully")
	}

	if db != nil {
		logger.Infof("Closing database connection...")
		if err := db.Close(); err != nil {
			logger.Errorf("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		logger.Infof("Closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.Errorf("Error closing Redis: %v", err)
		}
	}

	logger.Infof("Graceful shutdown completed")
}

// openLedger connects and migrates the delivery ledger. Any failure leaves
// the service running without it.
func openLedger(cfg environments.DatabaseConfig) *sqlx.DB {
	if !cfg.Enabled {
		logger.Infof("Ledger database disabled, funnel will show placeholder data")
		return nil
	}

	db, err := database.NewMySQLDB(cfg)
	if err != nil {
		logger.Warnf("Ledger database not available: %v", err)
		return nil
	}

	if err := database.RunMigrations(db); err != nil {
		logger.Warnf("Failed to run ledger migrations, ledger disabled: %v", err)
		_ = db.Close()
		return nil
	}

	if os.Getenv("SEED_DATA") == "true" {
		if err := database.SeedTestData(db); err != nil {
			logger.Warnf("Failed to seed ledger: %v", err)
		}
	}

	return db
}
