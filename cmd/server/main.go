// Package main implements the entry point for the ParcelDesk API
// server, the back office for a package delivery operation: accounts,
// drivers, merchants, package lifecycle, settings, and COD reporting.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/parceldesk/parceldesk-api/internal/config"
	"github.com/parceldesk/parceldesk-api/internal/platform/logger"
	"github.com/parceldesk/parceldesk-api/internal/platform/postgres"
	platformredis "github.com/parceldesk/parceldesk-api/internal/platform/redis"
	"github.com/parceldesk/parceldesk-api/internal/service"
	"github.com/parceldesk/parceldesk-api/internal/service/auth"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run wires configuration, storage, services, and the HTTP server, then
// blocks until shutdown completes.
func run() error {
	// A missing .env is fine; environment variables take precedence
	// anyway.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", "error", err)
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Stores
	userStore := postgres.NewUserStore(db, appLogger)
	driverStore := postgres.NewDriverStore(db, appLogger)
	merchantStore := postgres.NewMerchantStore(db, appLogger)
	packageStore := postgres.NewPackageStore(db, appLogger)
	settingStore := postgres.NewSettingStore(db, appLogger)

	// Auth
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	revoker, closeRevoker, err := buildRevoker(cfg, appLogger)
	if err != nil {
		return err
	}
	defer closeRevoker()

	authService := auth.NewService(userStore, jwtService, hasher, hasher, revoker, appLogger)

	// Domain services
	txRunner := store.NewSQLRunner(db)
	userService := service.NewUserService(userStore, hasher, txRunner, appLogger)
	driverService := service.NewDriverService(driverStore, packageStore, txRunner, appLogger)
	merchantService := service.NewMerchantService(merchantStore, packageStore, txRunner, appLogger)
	packageService := service.NewPackageService(packageStore, merchantStore, driverStore, txRunner, appLogger)
	settingsService := service.NewSettingsService(settingStore, appLogger)
	reportService := service.NewReportService(packageStore, userStore, driverStore, merchantStore, appLogger)

	router := setupRouter(routerDeps{
		authService:     authService,
		jwtService:      jwtService,
		userService:     userService,
		driverService:   driverService,
		merchantService: merchantService,
		packageService:  packageService,
		settingsService: settingsService,
		reportService:   reportService,
	})

	return serveHTTP(cfg.Server, router, appLogger)
}

// buildRevoker picks the refresh-token revocation backend: redis when
// configured, an in-process list otherwise.
func buildRevoker(cfg *config.Config, appLogger *slog.Logger) (auth.TokenRevoker, func(), error) {
	if cfg.Redis.Addr == "" {
		appLogger.Info("redis not configured, using in-process token revocation")
		return auth.NewMemoryRevoker(), func() {}, nil
	}

	list := platformredis.NewRevocationList(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := list.Ping(pingCtx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	appLogger.Info("redis token revocation enabled", "addr", cfg.Redis.Addr)
	closeFn := func() {
		if err := list.Close(); err != nil {
			appLogger.Error("failed to close redis client", "error", err)
		}
	}
	return list, closeFn, nil
}

// serveHTTP starts the HTTP server and blocks until SIGINT/SIGTERM,
// then drains in-flight requests.
func serveHTTP(cfg config.ServerConfig, handler http.Handler, appLogger *slog.Logger) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-shutdownCh:
		appLogger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	appLogger.Info("server shutdown completed")
	return nil
}
