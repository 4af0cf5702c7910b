package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/infrastructure/database"
	repo "github.com/emerginginv/media-api/internal/infrastructure/repository/media"
)

// provideRepository selects the metadata backend. The cleanup releases the
// database pool and is a no-op for the in-memory backend.
func provideRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (domain.Repository, func(), error) {
	if cfg.IsMemoryMetadata() {
		log.Warn().Msg("using in-memory metadata; catalog is lost on restart")
		return repo.NewInMemoryRepository(), func() {}, nil
	}

	db, err := database.Connect(database.ConfigFromService(cfg))
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(ctx, db, log); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}
	return repo.NewPostgresRepository(db), cleanup, nil
}
