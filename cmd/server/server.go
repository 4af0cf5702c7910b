package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/infrastructure/auth"
	"github.com/emerginginv/media-api/internal/infrastructure/logger"
	"github.com/emerginginv/media-api/internal/infrastructure/observability"
	"github.com/emerginginv/media-api/internal/infrastructure/storage"
	"github.com/emerginginv/media-api/internal/interfaces/httpserver"
)

// @title Media API
// @version 1.0
// @description Website media asset manager: validated uploads to object storage with a PostgreSQL catalog
// @BasePath /
// @securityDefinitions.apikey AdminKeyAuth
// @in header
// @name X-Media-Admin-Key
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	mediaRepository, closeRepository, err := provideRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize metadata repository")
	}
	defer closeRepository()

	mediaStorage, err := storage.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize storage")
	}

	validator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize admin auth")
	}

	mediaService := domain.NewService(cfg, mediaRepository, mediaStorage, log)

	httpServer := httpserver.New(cfg, log, mediaService, validator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
