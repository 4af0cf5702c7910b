//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/infrastructure/auth"
	"github.com/emerginginv/media-api/internal/infrastructure/logger"
	"github.com/emerginginv/media-api/internal/infrastructure/storage"
	"github.com/emerginginv/media-api/internal/interfaces/httpserver"
)

var mediaSet = wire.NewSet(
	provideRepository,
	storage.New,
	domain.NewService,
)

// BuildApplication assembles the media API with Wire.
func BuildApplication(ctx context.Context) (*Application, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		auth.NewValidator,
		mediaSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil, nil
}
