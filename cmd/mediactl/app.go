package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/infrastructure/database"
	"github.com/emerginginv/media-api/internal/infrastructure/logger"
	repo "github.com/emerginginv/media-api/internal/infrastructure/repository/media"
	"github.com/emerginginv/media-api/internal/infrastructure/storage"
)

type globalOptions struct {
	json    bool
	envFile string
}

// serviceFactory builds the media service for a command. Tests replace it.
var serviceFactory = buildService

func loadConfig(opts *globalOptions) (*config.Config, error) {
	if opts.envFile != "" {
		if err := godotenv.Overload(opts.envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", opts.envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	return config.Load()
}

func cliLogger(cfg *config.Config) zerolog.Logger {
	level := cfg.LogLevel
	if level == "" || level == "info" {
		level = "warn"
	}
	return logger.NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, "mediactl", cfg.Environment, level)
}

// buildService wires the configured backends. The returned cleanup closes
// the database pool.
func buildService(ctx context.Context, opts *globalOptions) (*domain.Service, func(), error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	log := cliLogger(cfg)

	mediaStorage, err := storage.New(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize storage: %w", err)
	}

	if cfg.IsMemoryMetadata() {
		return domain.NewService(cfg, repo.NewInMemoryRepository(), mediaStorage, log), func() {}, nil
	}

	db, err := database.Connect(database.ConfigFromService(cfg))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = database.Close(db) }
	return domain.NewService(cfg, repo.NewPostgresRepository(db), mediaStorage, log), cleanup, nil
}
