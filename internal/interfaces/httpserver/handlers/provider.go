package handlers

import (
	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
)

// Provider wires HTTP handlers.
type Provider struct {
	Media *MediaHandler
	Admin *AdminMediaHandler
}

func NewProvider(cfg *config.Config, service *domain.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Media: NewMediaHandler(service, log),
		Admin: NewAdminMediaHandler(cfg, service, log),
	}
}
