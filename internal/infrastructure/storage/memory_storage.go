package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
)

const backendMemory = "memory"

type memoryObject struct {
	data         []byte
	contentType  string
	cacheControl string
}

// MemoryStorage keeps objects in process. Objects are lost on restart.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
	log     zerolog.Logger
}

func NewMemoryStorage(cfg *config.Config, log zerolog.Logger) *MemoryStorage {
	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = cfg.LocalStorageBaseURL
	}
	return NewMemoryStorageWithBaseURL(baseURL, log)
}

func NewMemoryStorageWithBaseURL(baseURL string, log zerolog.Logger) *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[string]memoryObject),
		baseURL: baseURL,
		log:     log.With().Str("component", "memory-storage").Logger(),
	}
}

func objectName(bucket, key string) string {
	return bucket + "/" + key
}

func (m *MemoryStorage) Put(ctx context.Context, bucket, key string, body io.Reader, size int64, opts domain.PutOptions) (_ string, err error) {
	start := time.Now()
	defer func() { observe(backendMemory, "put", start, err) }()

	if err := validateKey(bucket, key); err != nil {
		return "", err
	}
	data, err := io.ReadAll(readerWithContext(ctx, body))
	if err != nil {
		return "", fmt.Errorf("read upload body: %w", err)
	}
	if size >= 0 && int64(len(data)) != size {
		return "", fmt.Errorf("%w: read %d of %d bytes", domain.ErrSizeMismatch, len(data), size)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	name := objectName(bucket, key)
	if _, exists := m.objects[name]; exists && !opts.Overwrite {
		return "", domain.ErrObjectExists
	}
	m.objects[name] = memoryObject{data: data, contentType: opts.ContentType, cacheControl: opts.CacheControl}
	return key, nil
}

func (m *MemoryStorage) PublicURL(bucket, key string) string {
	return joinPublicURL(m.baseURL, bucket, key)
}

func (m *MemoryStorage) Delete(_ context.Context, bucket, key string) (err error) {
	start := time.Now()
	defer func() { observe(backendMemory, "delete", start, err) }()

	m.mu.Lock()
	defer m.mu.Unlock()
	name := objectName(bucket, key)
	if _, ok := m.objects[name]; !ok {
		return domain.ErrObjectNotFound
	}
	delete(m.objects, name)
	return nil
}

func (m *MemoryStorage) Open(_ context.Context, bucket, key string) (_ io.ReadCloser, _ domain.ObjectInfo, err error) {
	start := time.Now()
	defer func() { observe(backendMemory, "open", start, err) }()

	m.mu.RLock()
	obj, ok := m.objects[objectName(bucket, key)]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ObjectInfo{}, domain.ErrObjectNotFound
	}

	contentType := obj.contentType
	if contentType == "" {
		contentType = mimetype.Detect(obj.data).String()
	}
	return io.NopCloser(bytes.NewReader(obj.data)), domain.ObjectInfo{
		ContentType: contentType,
		Size:        int64(len(obj.data)),
	}, nil
}

func (m *MemoryStorage) Health(context.Context) error {
	return nil
}

// Keys lists stored objects in bucket as sorted keys.
func (m *MemoryStorage) Keys(bucket string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefix := bucket + "/"
	var keys []string
	for name := range m.objects {
		if strings.HasPrefix(name, prefix) {
			keys = append(keys, strings.TrimPrefix(name, prefix))
		}
	}
	sort.Strings(keys)
	return keys
}

// CacheControl returns the cache header an object was stored with.
func (m *MemoryStorage) CacheControl(bucket, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[objectName(bucket, key)]
	return obj.cacheControl, ok
}
