package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/limaexpress/messenger-bot/internal/api/router"
	"github.com/limaexpress/messenger-bot/internal/bot"
	"github.com/limaexpress/messenger-bot/internal/channels/messenger"
	appconfig "github.com/limaexpress/messenger-bot/internal/config"
	"github.com/limaexpress/messenger-bot/internal/nlu/wit"
	"github.com/limaexpress/messenger-bot/internal/observability/metrics"
	"github.com/limaexpress/messenger-bot/internal/responder"
	"github.com/limaexpress/messenger-bot/internal/session"
	"github.com/limaexpress/messenger-bot/pkg/logging"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting messenger-bot",
		"port", cfg.Port,
		"session_ttl", cfg.SessionTTL.String(),
	)

	sessions := session.NewStore(cfg.SessionTTL)
	botMetrics := metrics.NewBotMetrics(prometheus.DefaultRegisterer, func() float64 {
		return float64(sessions.Len())
	})

	witClient := wit.NewClient(wit.Config{
		BaseURL: cfg.WitBaseURL,
		Token:   cfg.WitToken,
	})

	gateway := messenger.NewClient(cfg.PageAccessToken)
	if cfg.GraphAPIBase != "" {
		gateway.SetGraphAPIBase(cfg.GraphAPIBase)
	}

	pipeline := bot.NewPipeline(sessions, witClient, responder.New(logger), gateway, logger, botMetrics)
	webhook := messenger.NewWebhookHandler(cfg.VerifyToken, logger, pipeline.Dispatch)

	// Session janitor runs until shutdown.
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	sessions.Start(janitorCtx)

	r := router.New(&router.Config{
		Logger:         logger,
		Webhook:        webhook,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stopJanitor()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
