package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/global-express/whatsapp-notifier/docs"
	"github.com/global-express/whatsapp-notifier/internal/config"
	"github.com/global-express/whatsapp-notifier/internal/domain"
	"github.com/global-express/whatsapp-notifier/internal/handler"
	"github.com/global-express/whatsapp-notifier/internal/middleware"
	"github.com/global-express/whatsapp-notifier/internal/provider"
	"github.com/global-express/whatsapp-notifier/internal/service"
	"github.com/global-express/whatsapp-notifier/internal/telemetry"
)

// @title WhatsApp Notifier API
// @version 1.0
// @description HTTP-to-WhatsApp notification relay

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logLevel := slog.LevelInfo
	if cfg.App.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("starting whatsapp notifier",
		"env", cfg.App.Env,
		"port", cfg.Server.Port,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.App.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		logger.Error("failed to setup tracing", "error", err)
		os.Exit(1)
	}

	metrics := handler.NewMetrics(prometheus.DefaultRegisterer)

	wsHub := handler.NewWebSocketHub(logger)
	go wsHub.Run(ctx)

	// A missing credential leaves notifier nil: the service still serves
	// liveness and info endpoints but refuses notifications.
	var notifier handler.Notifier
	twilioClient, err := provider.NewTwilioClient(cfg.Twilio)
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		logger.Warn("twilio credentials missing, notifications disabled",
			"account_sid_set", cfg.Twilio.AccountSID != "",
			"auth_token_set", cfg.Twilio.AuthToken != "",
		)
	case err != nil:
		logger.Error("failed to create twilio client", "error", err)
		os.Exit(1)
	default:
		notificationService := service.NewNotificationService(twilioClient, service.Options{
			From:             cfg.Twilio.WhatsAppNumber,
			DefaultRecipient: cfg.Twilio.DefaultRecipient,
			TrackingBaseURL:  cfg.Delivery.TrackingBaseURL,
		}, logger, metrics)
		notificationService.SetDispatchBroadcast(wsHub.BroadcastDispatch)
		notifier = notificationService

		if cfg.Twilio.WhatsAppNumber == "" {
			logger.Warn("TWILIO_WHATSAPP_NUMBER is not set, sends will be refused")
		}
		if cfg.Twilio.DefaultRecipient == "" {
			logger.Warn("MY_WHATSAPP_NUMBER is not set, generic and appointment notifications disabled")
		}
	}
	configured := notifier != nil
	metrics.SetConfigured(configured)

	// Initialize handlers
	notificationHandler := handler.NewNotificationHandler(notifier, logger)
	healthHandler := handler.NewHealthHandler()
	healthHandler.AddChecker("twilio", handler.CheckerFunc(func(ctx context.Context) error {
		if !configured {
			return domain.ErrNotConfigured
		}
		return nil
	}))
	statusHandler := handler.NewStatusHandler(handler.StatusInfo{
		Configured:          configured,
		Sender:              cfg.Twilio.WhatsAppNumber,
		DefaultRecipientSet: cfg.Twilio.DefaultRecipient != "",
	}, wsHub)
	metricsHandler := handler.NewMetricsHandler(prometheus.DefaultGatherer)
	wsHandler := handler.NewWebSocketHandler(wsHub)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Correlation)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(metrics))

	r.Get("/", healthHandler.Index)
	r.Get("/status", statusHandler.Status)

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Handle("/metrics", metricsHandler.Handler())
	r.Get("/ws", wsHandler.HandleWebSocket)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	notificationHandler.RegisterRoutes(r)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Server.Port, "configured", configured)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Stop accepting new requests, wait for in-flight sends
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Stop the websocket hub
	cancel()

	if err := telemetry.Close(shutdownCtx, shutdownTracing); err != nil {
		logger.Error("tracing shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
