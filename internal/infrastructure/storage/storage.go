package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/infrastructure/metrics"
)

// ErrInvalidKey is returned for keys that are empty or escape their bucket.
var ErrInvalidKey = errors.New("invalid object key")

// New creates the storage backend selected by MEDIA_STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (domain.Storage, error) {
	switch {
	case cfg.IsLocalStorage():
		return NewLocalStorage(cfg, log)
	case cfg.IsMemoryStorage():
		return NewMemoryStorage(cfg, log), nil
	case cfg.IsS3Storage():
		return NewS3Storage(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// validateKey rejects keys that could address something outside their bucket.
func validateKey(bucket, key string) error {
	if strings.TrimSpace(bucket) == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return fmt.Errorf("%w: bucket %q", ErrInvalidKey, bucket)
	}
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

// joinPublicURL builds base/bucket/key without doubling or dropping slashes.
func joinPublicURL(base, bucket, key string) string {
	base = strings.TrimSuffix(strings.TrimSpace(base), "/")
	relative := path.Join(bucket, strings.TrimPrefix(key, "/"))
	if base == "" {
		return ensureLeadingSlash(relative)
	}
	return base + "/" + relative
}

func ensureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// observe records one storage call into prometheus.
func observe(backend, operation string, start time.Time, err error) {
	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrObjectNotFound):
		status = "not_found"
	case errors.Is(err, domain.ErrObjectExists):
		status = "exists"
	default:
		status = "error"
	}
	metrics.RecordStorageOperation(backend, operation, status, time.Since(start).Seconds())
}
