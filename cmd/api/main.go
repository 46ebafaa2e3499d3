package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/phishblock-service/internal/adapter/postgres"
	redisadapter "github.com/user/phishblock-service/internal/adapter/redis"
	"github.com/user/phishblock-service/internal/delivery/http/handler"
	"github.com/user/phishblock-service/internal/delivery/http/router"
	"github.com/user/phishblock-service/internal/entity"
	"github.com/user/phishblock-service/internal/model"
	"github.com/user/phishblock-service/internal/repository"
	"github.com/user/phishblock-service/internal/usecase"
	"github.com/user/phishblock-service/pkg/config"
	"github.com/user/phishblock-service/pkg/logger"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}

	// --- Logger ---
	logger.Init(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	slog.Info("Logger initialized", "level", cfg.LogLevel)

	ctx := context.Background()

	// --- Model acquisition (blocks startup; the only phase allowed to
	// touch the on-disk artifact location) ---
	artifactPath, metadataPath, err := model.Ensure(ctx, model.FetchConfig{
		SearchPaths:      model.DefaultSearchPaths(cfg.ModelDir),
		DestDir:          cfg.ModelDir,
		ArtifactURL:      cfg.ModelURL,
		MetadataURL:      cfg.ModelMetadataURL,
		MaxArtifactBytes: cfg.ModelMaxBytes,
	})
	if err != nil {
		slog.Error("Model acquisition failed, cannot serve without a model", "error", err)
		os.Exit(1)
	}

	booster, err := model.LoadBooster(artifactPath)
	if err != nil {
		slog.Error("Unable to load model artifact", "path", artifactPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Model loaded", "path", artifactPath, "trees", booster.NumTrees())

	bundle := &model.Bundle{Booster: booster}
	if metadataPath != "" {
		meta, err := model.LoadMetadata(metadataPath)
		if err != nil {
			slog.Warn("Model metadata unavailable, using default threshold", "path", metadataPath, "error", err)
		} else {
			bundle.Metadata = meta
			slog.Info("Model metadata loaded", "version", meta.Version)
		}
	}
	if !bundle.Metadata.FeatureNamesMatch(entity.FeatureNames) {
		slog.Warn("Model metadata feature list diverges from the canonical feature order; predictions may be wrong",
			"metadata_features", bundle.Metadata.FeatureNames)
	}

	// --- Use Cases ---
	classifier := usecase.NewClassifier(bundle.Booster, bundle.BaseThreshold())

	// --- Optional collaborators ---
	var reports usecase.ReportManager
	if cfg.DatabaseURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("Unable to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbpool.Close()
		reports = usecase.NewReportManager(postgres.NewReportRepo(dbpool))
		slog.Info("PostgreSQL connection pool established")
	}

	var limiter repository.RateLimitRepository
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			slog.Error("Unable to connect to Redis", "error", err)
			os.Exit(1)
		}
		limiter = redisadapter.NewRateLimitRepo(rdb)
		slog.Info("Redis connection established")
	}

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(classifier, reports, bundle)
	httpRouter := router.New(apiHandler, limiter, cfg.RateLimitPerMinute)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
