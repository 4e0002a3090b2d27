package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fileportal/backend-go/internal/alerts"
	"github.com/fileportal/backend-go/internal/api"
	"github.com/fileportal/backend-go/internal/cache"
	"github.com/fileportal/backend-go/internal/config"
	"github.com/fileportal/backend-go/internal/gateway"
	"github.com/fileportal/backend-go/internal/service"
	"github.com/fileportal/backend-go/internal/storage"
	"github.com/fileportal/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// ConfigurationMissing is fatal: never serve a request the
		// store calls cannot complete.
		logger.Log.Fatal().Err(err).Msg("configuration invalid")
	}

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.NewMinioStore(cfg.S3)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to initialize object store client")
	}

	gw, err := gateway.New(store, gateway.Config{
		Bucket:         cfg.S3.Bucket,
		BackupBucket:   cfg.S3.BackupBucket,
		AuditBucket:    cfg.Audit.Bucket,
		AuditAccountID: cfg.Audit.AccountID,
	}, alerts.NewLedger(), logger.Component("gateway"))
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to construct storage gateway")
	}

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to initialize dashboard cache")
	}
	dashboard := service.NewDashboardService(gw, dashboardCache, logger.Component("dashboard"))

	router := api.NewRouter(gw, dashboard, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
