// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/autoorder/internal/api"
	"github.com/andresuchdata/autoorder/internal/cache"
	"github.com/andresuchdata/autoorder/internal/catalog"
	"github.com/andresuchdata/autoorder/internal/config"
	"github.com/andresuchdata/autoorder/internal/drive"
	"github.com/andresuchdata/autoorder/internal/repository"
	"github.com/andresuchdata/autoorder/internal/repository/postgres"
	"github.com/andresuchdata/autoorder/internal/service"
	"github.com/andresuchdata/autoorder/internal/storage"
	"github.com/andresuchdata/autoorder/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Setup(cfg.Server.Mode, cfg.Server.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	provider, cleanup, err := buildProvider(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("source", cfg.Catalog.Source).Msg("Failed to initialize catalog")
	}
	defer cleanup()

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Report cache unavailable, continuing without cache")
		reportCache = cache.NewNoopReportCache()
	}

	// Initialize services
	services := &api.Services{
		ReplenishmentService: service.NewReplenishmentService(provider, reportCache),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().
			Str("port", cfg.Server.Port).
			Str("catalog", provider.Name()).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// buildProvider wires the catalog source selected by CATALOG_SOURCE.
func buildProvider(ctx context.Context, cfg *config.Config) (catalog.Provider, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		providers := make([]catalog.Provider, 0, len(cfg.Catalog.Paths))
		for _, path := range cfg.Catalog.Paths {
			providers = append(providers, catalog.NewFileProvider(path))
		}
		if len(providers) == 1 {
			return providers[0], noop, nil
		}
		return catalog.NewMultiProvider(providers...), noop, nil

	case config.CatalogSourceDatabase:
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		repo := repository.NewCatalogRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}
		return catalog.NewRepositoryProvider(repo), func() { db.Close() }, nil

	case config.CatalogSourceS3:
		client, err := storage.NewMinioClient(storage.Config{
			Endpoint:  cfg.Catalog.S3Endpoint,
			AccessKey: cfg.Catalog.S3AccessKey,
			SecretKey: cfg.Catalog.S3SecretKey,
			Bucket:    cfg.Catalog.S3Bucket,
			Region:    cfg.Catalog.S3Region,
			UseSSL:    cfg.Catalog.S3UseSSL,
		})
		if err != nil {
			return nil, noop, err
		}
		return catalog.NewObjectStorageProvider(client, cfg.Catalog.S3Key), noop, nil

	case config.CatalogSourceDrive:
		svc, err := drive.NewService(ctx, cfg.Catalog.DriveCredentialsJSON)
		if err != nil {
			return nil, noop, err
		}
		if cfg.Catalog.DriveFileID != "" {
			return catalog.NewDriveFileProvider(svc, cfg.Catalog.DriveFileID), noop, nil
		}
		return catalog.NewDriveFolderProvider(svc, cfg.Catalog.DriveFolderPath), noop, nil

	default:
		return catalog.NewStaticProvider("sample", catalog.SampleProducts()), noop, nil
	}
}
