package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/config"
)

// New creates a zerolog.Logger for the media service. Development
// environments get console output, everything else writes JSON lines.
func New(cfg *config.Config) zerolog.Logger {
	var out io.Writer = os.Stdout
	if isDevelopment(cfg.Environment) {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}
	return NewWithWriter(out, cfg.ServiceName, cfg.Environment, cfg.LogLevel)
}

// NewWithWriter builds the service logger on top of an arbitrary writer.
func NewWithWriter(out io.Writer, service, environment, level string) zerolog.Logger {
	return zerolog.New(out).
		With().
		Timestamp().
		Str("service", service).
		Str("environment", environment).
		Logger().
		Level(parseLevel(level))
}

func isDevelopment(environment string) bool {
	switch strings.ToLower(strings.TrimSpace(environment)) {
	case "", "dev", "development", "local":
		return true
	default:
		return false
	}
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
