package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpAdapter "github.com/khoahotran/scholar-folio/adapters/http"
	"github.com/khoahotran/scholar-folio/adapters/persistence"
	authUC "github.com/khoahotran/scholar-folio/internal/application/usecase/auth"
	backupUC "github.com/khoahotran/scholar-folio/internal/application/usecase/backup"
	contentUC "github.com/khoahotran/scholar-folio/internal/application/usecase/content"
	feedUC "github.com/khoahotran/scholar-folio/internal/application/usecase/feed"
	"github.com/khoahotran/scholar-folio/internal/application/usecase/notify"
	persistUC "github.com/khoahotran/scholar-folio/internal/application/usecase/persistence"
	"github.com/khoahotran/scholar-folio/internal/config"
	"github.com/khoahotran/scholar-folio/internal/domain/notification"
	"github.com/khoahotran/scholar-folio/pkg/auth"
	"github.com/khoahotran/scholar-folio/pkg/logger"
	"github.com/khoahotran/scholar-folio/pkg/tracing"
)

const serviceName = "scholar-folio"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start scholar-folio API server...", zap.String("storage", cfg.Storage.Driver))

	shutdownTracing, err := tracing.Setup(cfg, appLogger, serviceName)
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}

	ctx := context.Background()

	// Storage
	kv, err := persistence.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open storage", err)
	}
	defer kv.Close()

	adapter := persistUC.NewAdapter(kv, cfg.Storage.Prefix, appLogger)
	controller := persistUC.NewController(adapter, cfg.Persistence.Debounce, appLogger)
	snap, report := controller.Hydrate(ctx)

	// Use Cases
	channel := notify.NewChannel(appLogger)
	store := contentUC.NewStore(snap, controller, appLogger)
	if report.FirstRun {
		if err := controller.Persist(ctx, store.Snapshot()); err != nil {
			appLogger.Warn("Could not write initial content", zap.Error(err))
		}
	}
	if report.StorageUnavailable {
		channel.Notify("Storage is unavailable; changes will not be saved", notification.KindError)
	}

	gate, err := authUC.NewGate(ctx, controller, auth.NewPasswordHasher(cfg.Auth.BcryptCost), authUC.GateConfig{
		DefaultPassword:   cfg.Auth.DefaultPassword,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init auth gate", err)
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	backupUseCase := backupUC.NewBackupUseCase(store, channel, appLogger)
	rssUseCase := feedUC.NewRSSUseCase(store, cfg.App.SiteURL, appLogger)

	if cfg.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	deps := httpAdapter.RouterDeps{
		Store:    store,
		Gate:     gate,
		Backup:   backupUseCase,
		RSS:      rssUseCase,
		Notifier: channel,
		Meta:     controller,
		JWT:      jwtSvc,
		Logger:   appLogger,
	}
	if cfg.Tracing.Enabled {
		deps.ServiceName = serviceName
	}
	router := httpAdapter.NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown failed", err)
	}
	if err := controller.Close(shutdownCtx); err != nil {
		appLogger.Error("Failed to flush pending content", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Error("Tracing shutdown failed", err)
	}
}
