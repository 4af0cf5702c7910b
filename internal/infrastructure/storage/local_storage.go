package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
)

const backendLocal = "local"

var errLocalStorageDisabled = errors.New("local storage is not configured; set MEDIA_LOCAL_STORAGE_PATH to enable")

// LocalStorage keeps objects on the local filesystem under <root>/<bucket>/<key>.
type LocalStorage struct {
	basePath string
	baseURL  string
	log      zerolog.Logger
	disabled bool
}

// NewLocalStorage creates a new local filesystem storage backend.
func NewLocalStorage(cfg *config.Config, log zerolog.Logger) (*LocalStorage, error) {
	logger := log.With().Str("component", "local-storage").Logger()

	basePath := strings.TrimSpace(cfg.LocalStoragePath)
	if basePath == "" {
		logger.Warn().Msg("MEDIA_LOCAL_STORAGE_PATH is not set; local storage will be disabled")
		return &LocalStorage{log: logger, disabled: true}, nil
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve local storage path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory: %w", err)
	}

	baseURL := strings.TrimSpace(cfg.PublicBaseURL)
	if baseURL == "" {
		baseURL = strings.TrimSpace(cfg.LocalStorageBaseURL)
	}

	storage := &LocalStorage{
		basePath: absPath,
		baseURL:  baseURL,
		log:      logger,
	}
	logger.Info().
		Str("path", absPath).
		Str("base_url", baseURL).
		Msg("local storage initialized")
	return storage, nil
}

func (l *LocalStorage) ensureEnabled() error {
	if l.disabled {
		return errLocalStorageDisabled
	}
	return nil
}

// resolve maps bucket and key onto a path inside basePath.
func (l *LocalStorage) resolve(bucket, key string) (string, error) {
	if err := validateKey(bucket, key); err != nil {
		return "", err
	}
	bucketRoot := filepath.Join(l.basePath, bucket)
	fullPath := filepath.Join(bucketRoot, filepath.FromSlash(key))
	rel, err := filepath.Rel(bucketRoot, fullPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return fullPath, nil
}

// Put writes the body to disk. Without Overwrite an existing file yields ErrObjectExists.
func (l *LocalStorage) Put(ctx context.Context, bucket, key string, body io.Reader, size int64, opts domain.PutOptions) (_ string, err error) {
	start := time.Now()
	defer func() { observe(backendLocal, "put", start, err) }()

	if err := l.ensureEnabled(); err != nil {
		return "", err
	}
	fullPath, err := l.resolve(bucket, key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if opts.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	file, err := os.OpenFile(fullPath, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", domain.ErrObjectExists
		}
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	written, copyErr := io.Copy(file, readerWithContext(ctx, body))
	closeErr := file.Close()
	if copyErr == nil && size >= 0 && written != size {
		copyErr = fmt.Errorf("%w: wrote %d of %d bytes", domain.ErrSizeMismatch, written, size)
	}
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(fullPath)
		if copyErr != nil {
			return "", fmt.Errorf("failed to write file: %w", copyErr)
		}
		return "", fmt.Errorf("failed to close file: %w", closeErr)
	}

	l.log.Debug().
		Str("bucket", bucket).
		Str("key", key).
		Int64("bytes", written).
		Msg("file stored in local storage")
	return key, nil
}

func (l *LocalStorage) PublicURL(bucket, key string) string {
	return joinPublicURL(l.baseURL, bucket, key)
}

func (l *LocalStorage) Delete(ctx context.Context, bucket, key string) (err error) {
	start := time.Now()
	defer func() { observe(backendLocal, "delete", start, err) }()

	if err := l.ensureEnabled(); err != nil {
		return err
	}
	fullPath, err := l.resolve(bucket, key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrObjectNotFound
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Open reads a stored file. The content type is detected from its bytes.
func (l *LocalStorage) Open(ctx context.Context, bucket, key string) (_ io.ReadCloser, _ domain.ObjectInfo, err error) {
	start := time.Now()
	defer func() { observe(backendLocal, "open", start, err) }()

	if err := l.ensureEnabled(); err != nil {
		return nil, domain.ObjectInfo{}, err
	}
	fullPath, err := l.resolve(bucket, key)
	if err != nil {
		return nil, domain.ObjectInfo{}, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ObjectInfo{}, domain.ErrObjectNotFound
		}
		return nil, domain.ObjectInfo{}, fmt.Errorf("failed to open file: %w", err)
	}
	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, domain.ObjectInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.IsDir() {
		_ = file.Close()
		return nil, domain.ObjectInfo{}, domain.ErrObjectNotFound
	}

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		_ = file.Close()
		return nil, domain.ObjectInfo{}, fmt.Errorf("detect content type: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		_ = file.Close()
		return nil, domain.ObjectInfo{}, fmt.Errorf("rewind file: %w", err)
	}

	return file, domain.ObjectInfo{ContentType: detected.String(), Size: stat.Size()}, nil
}

// Health checks that the storage directory is writable.
func (l *LocalStorage) Health(ctx context.Context) error {
	if err := l.ensureEnabled(); err != nil {
		return err
	}
	testFile := filepath.Join(l.basePath, ".health_check")
	if err := os.WriteFile(testFile, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("storage directory not writable: %w", err)
	}
	_ = os.Remove(testFile)
	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
