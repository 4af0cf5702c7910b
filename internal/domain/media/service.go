package media

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/emerginginv/media-api/internal/config"
	"github.com/emerginginv/media-api/internal/infrastructure/metrics"
	"github.com/emerginginv/media-api/internal/utils/idgen"
	"github.com/emerginginv/media-api/internal/utils/platformerrors"
)

const (
	DefaultListLimit     = 50
	DefaultFeaturedLimit = 10
	MaxListLimit         = 200

	randomSuffixLength = 6
)

// Repository defines persistence operations needed by the service.
type Repository interface {
	// Create inserts the asset and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, asset *Asset) error
	// GetByID returns a NOT_FOUND platform error when the id is unknown.
	GetByID(ctx context.Context, id string) (*Asset, error)
	List(ctx context.Context, filter ListFilter) ([]Asset, error)
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

// Storage defines object storage operations. Buckets are addressed per call.
type Storage interface {
	// Put writes exactly size bytes and returns the object path. With
	// Overwrite false an existing key yields ErrObjectExists.
	Put(ctx context.Context, bucket, key string, body io.Reader, size int64, opts PutOptions) (string, error)
	PublicURL(bucket, key string) string
	// Delete returns ErrObjectNotFound when the key does not exist.
	Delete(ctx context.Context, bucket, key string) error
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error)
	Health(ctx context.Context) error
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source used for storage keys.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithRandomSuffix overrides the random component of storage keys.
func WithRandomSuffix(random func() (string, error)) ServiceOption {
	return func(s *Service) { s.random = random }
}

// WithPolicy replaces the validation policy derived from config.
func WithPolicy(policy Policy) ServiceOption {
	return func(s *Service) { s.policy = policy }
}

// Service validates, stores, catalogs, lists and deletes media assets.
type Service struct {
	policy     Policy
	repo       Repository
	storage    Storage
	log        zerolog.Logger
	tracer     trace.Tracer
	compensate bool
	recent     *recentWindow
	now        func() time.Time
	random     func() (string, error)
}

func NewService(cfg *config.Config, repo Repository, storage Storage, log zerolog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		policy:     NewPolicy(cfg),
		repo:       repo,
		storage:    storage,
		log:        log.With().Str("component", "media-service").Logger(),
		tracer:     otel.Tracer("media-api/media"),
		compensate: cfg.CompensateOrphans,
		recent:     newRecentWindow(cfg.RecentWindow),
		now:        time.Now,
		random: func() (string, error) {
			return idgen.RandomString(randomSuffixLength)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the active validation policy.
func (s *Service) Policy() Policy {
	return s.policy
}

// Validate classifies a file without touching any backend.
func (s *Service) Validate(file File) (Kind, error) {
	return s.policy.Validate(file)
}

// Upload validates the file, writes it to its bucket and records its metadata.
// The object write always completes before the metadata insert starts.
func (s *Service) Upload(ctx context.Context, file File, opts UploadOptions) (*UploadedAsset, error) {
	ctx, span := s.tracer.Start(ctx, "media.Upload", trace.WithAttributes(
		attribute.String("media.original_name", file.Name),
		attribute.String("media.mime_type", file.MimeType),
		attribute.Int64("media.size", file.Size),
	))
	defer span.End()

	asset, kind, err := s.upload(ctx, file, opts)
	if err != nil {
		failSpan(span, err)
		metrics.RecordUpload(kindLabel(kind), string(CodeOf(err)), 0)
		event := s.log.Error()
		var mErr *Error
		if errors.As(err, &mErr) && mErr.Validation() {
			event = s.log.Warn()
		}
		event.Err(err).
			Str("original_name", file.Name).
			Str("mime_type", file.MimeType).
			Int64("size", file.Size).
			Msg("upload failed")
		return nil, err
	}

	metrics.RecordUpload(string(kind), "success", asset.FileSize)
	span.SetAttributes(attribute.String("media.id", asset.ID), attribute.String("media.bucket", asset.Bucket))
	s.recent.add(*asset)
	s.log.Info().
		Str("id", asset.ID).
		Str("bucket", asset.Bucket).
		Str("key", asset.StorageKey).
		Int64("size", asset.FileSize).
		Msg("media uploaded")
	return asset, nil
}

func (s *Service) upload(ctx context.Context, file File, opts UploadOptions) (*UploadedAsset, Kind, error) {
	kind, err := s.policy.Validate(file)
	if err != nil {
		return nil, kind, err
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, kind, newError(CodeInvalidRequest, nil, "file name is required")
	}
	if file.Body == nil {
		return nil, kind, newError(CodeInvalidRequest, nil, "file body is required")
	}
	category, err := NormalizeCategory(opts.Category)
	if err != nil {
		return nil, kind, err
	}
	opts.Category = category
	opts = opts.withDefaults(file)

	random, err := s.random()
	if err != nil {
		return nil, kind, newError(CodeStorageWrite, err, "generate storage key")
	}
	bucket := s.policy.Bucket(kind)
	key := BuildStorageKey(file.Name, category, s.now(), random)

	path, err := s.storage.Put(ctx, bucket, key, newExactReader(file.Body, file.Size), file.Size, PutOptions{
		ContentType:  file.MimeType,
		CacheControl: s.policy.CacheControl,
		Overwrite:    false,
	})
	if err != nil {
		return nil, kind, newError(CodeStorageWrite, err, "upload %s to bucket %s failed", key, bucket)
	}
	publicURL := s.storage.PublicURL(bucket, key)

	asset := &Asset{
		Filename:     key,
		OriginalName: file.Name,
		FilePath:     path,
		BucketName:   bucket,
		FileSize:     file.Size,
		MimeType:     file.MimeType,
		AltText:      opts.AltText,
		Title:        opts.Title,
		Description:  opts.Description,
		Category:     opts.Category,
		IsFeatured:   opts.IsFeatured,
	}
	if err := s.repo.Create(ctx, asset); err != nil {
		s.removeOrphan(ctx, bucket, key)
		return nil, kind, newError(CodeMetadataInsert, err, "save media record for %s failed", key)
	}
	asset.PublicURL = publicURL

	return &UploadedAsset{Asset: *asset, StorageKey: key, Bucket: bucket}, kind, nil
}

// removeOrphan deletes an object whose metadata insert failed. Failures are
// logged for manual reconciliation and never replace the insert error.
func (s *Service) removeOrphan(ctx context.Context, bucket, key string) {
	if !s.compensate {
		s.log.Error().Str("bucket", bucket).Str("key", key).Msg("metadata insert failed; object left without catalog row")
		return
	}
	if err := s.storage.Delete(context.WithoutCancel(ctx), bucket, key); err != nil && !errors.Is(err, ErrObjectNotFound) {
		s.log.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("orphaned object could not be removed")
		return
	}
	s.log.Warn().Str("bucket", bucket).Str("key", key).Msg("removed object after metadata insert failure")
}

// UploadMany uploads files one at a time in input order. Every file gets a
// result; a failure does not stop the remaining uploads.
func (s *Service) UploadMany(ctx context.Context, files []File, opts UploadOptions) []UploadResult {
	ctx, span := s.tracer.Start(ctx, "media.UploadMany", trace.WithAttributes(attribute.Int("media.count", len(files))))
	defer span.End()

	results := make([]UploadResult, 0, len(files))
	failed := 0
	for i, file := range files {
		asset, err := s.Upload(ctx, file, opts)
		if err != nil {
			failed++
		}
		results = append(results, UploadResult{Index: i, Filename: file.Name, Asset: asset, Err: err})
	}
	span.SetAttributes(attribute.Int("media.failed", failed))
	return results
}

// ListByCategory returns assets newest first, optionally limited to one category.
func (s *Service) ListByCategory(ctx context.Context, category string, limit int) ([]Asset, error) {
	return s.list(ctx, "media.ListByCategory", ListFilter{
		Category: listCategory(category),
		Limit:    clampLimit(limit, DefaultListLimit),
	})
}

// ListFeatured returns featured assets newest first.
func (s *Service) ListFeatured(ctx context.Context, limit int) ([]Asset, error) {
	return s.list(ctx, "media.ListFeatured", ListFilter{
		FeaturedOnly: true,
		Limit:        clampLimit(limit, DefaultFeaturedLimit),
	})
}

func (s *Service) list(ctx context.Context, spanName string, filter ListFilter) ([]Asset, error) {
	ctx, span := s.tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.String("media.category", filter.Category),
		attribute.Int("media.limit", filter.Limit),
	))
	defer span.End()

	assets, err := s.repo.List(ctx, filter)
	if err != nil {
		mErr := newError(CodeMetadataQuery, err, "list media failed")
		failSpan(span, mErr)
		s.log.Error().Err(err).Str("category", filter.Category).Bool("featured", filter.FeaturedOnly).Msg("list media failed")
		return nil, mErr
	}
	if len(assets) > filter.Limit {
		assets = assets[:filter.Limit]
	}
	for i := range assets {
		assets[i].PublicURL = s.storage.PublicURL(assets[i].BucketName, assets[i].Filename)
	}
	return assets, nil
}

// Get returns one asset with its public URL.
func (s *Service) Get(ctx context.Context, id string) (*Asset, error) {
	ctx, span := s.tracer.Start(ctx, "media.Get", trace.WithAttributes(attribute.String("media.id", id)))
	defer span.End()

	asset, err := s.lookup(ctx, id)
	if err != nil {
		failSpan(span, err)
		return nil, err
	}
	asset.PublicURL = s.storage.PublicURL(asset.BucketName, asset.Filename)
	return asset, nil
}

// Delete removes the stored object and then its catalog row.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "media.Delete", trace.WithAttributes(attribute.String("media.id", id)))
	defer span.End()

	err := s.delete(ctx, id)
	if err != nil {
		failSpan(span, err)
		metrics.RecordDelete(string(CodeOf(err)))
		return err
	}
	metrics.RecordDelete("success")
	return nil
}

func (s *Service) delete(ctx context.Context, id string) error {
	asset, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, asset.BucketName, asset.Filename); err != nil {
		if !errors.Is(err, ErrObjectNotFound) {
			s.log.Error().Err(err).Str("id", asset.ID).Str("bucket", asset.BucketName).Str("key", asset.Filename).Msg("storage delete failed")
			return newError(CodeStorageDelete, err, "delete %s from bucket %s failed", asset.Filename, asset.BucketName)
		}
		s.log.Warn().Str("id", asset.ID).Str("bucket", asset.BucketName).Str("key", asset.Filename).Msg("object already absent; removing catalog row")
	}

	if err := s.repo.Delete(ctx, asset.ID); err != nil {
		s.log.Error().Err(err).
			Str("id", asset.ID).
			Str("bucket", asset.BucketName).
			Str("key", asset.Filename).
			Msg("object removed but catalog row remains")
		return newError(CodeMetadataDelete, err, "delete media record %s failed", asset.ID)
	}

	s.log.Info().Str("id", asset.ID).Str("bucket", asset.BucketName).Str("key", asset.Filename).Msg("media deleted")
	return nil
}

func (s *Service) lookup(ctx context.Context, id string) (*Asset, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, newError(CodeInvalidRequest, nil, "media id is required")
	}
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, newError(CodeNotFound, err, "media %s not found", id)
		}
		return nil, newError(CodeMetadataQuery, err, "get media %s failed", id)
	}
	if asset == nil {
		return nil, newError(CodeNotFound, nil, "media %s not found", id)
	}
	return asset, nil
}

// Categories returns the suggested categories followed by any other category
// present in the catalog, each with its asset count.
func (s *Service) Categories(ctx context.Context) ([]CategoryUsage, error) {
	counts, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, newError(CodeMetadataQuery, err, "count media by category failed")
	}

	out := SuggestedCategories()
	known := make(map[string]struct{}, len(out))
	for i := range out {
		out[i].AssetCount = counts[out[i].ID]
		known[out[i].ID] = struct{}{}
	}

	var extra []string
	for id := range counts {
		if _, ok := known[id]; !ok {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		out = append(out, CategoryUsage{ID: id, Name: id, AssetCount: counts[id]})
	}
	return out, nil
}

// Recent returns the latest uploads made through this process, newest first.
func (s *Service) Recent(limit int) []UploadedAsset {
	items := s.recent.list(limit)
	for i := range items {
		items[i].PublicURL = s.storage.PublicURL(items[i].Bucket, items[i].StorageKey)
	}
	return items
}

// Open streams a stored object. Only the configured buckets are readable.
func (s *Service) Open(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	allowed := false
	for _, b := range s.policy.Buckets() {
		if b == bucket {
			allowed = true
		}
	}
	key = strings.TrimPrefix(key, "/")
	if !allowed || key == "" {
		return nil, ObjectInfo{}, newError(CodeNotFound, nil, "object %s/%s not found", bucket, key)
	}

	reader, info, err := s.storage.Open(ctx, bucket, key)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, ObjectInfo{}, newError(CodeNotFound, err, "object %s/%s not found", bucket, key)
		}
		return nil, ObjectInfo{}, newError(CodeStorageRead, err, "open %s/%s failed", bucket, key)
	}
	return reader, info, nil
}

// Health reports whether the storage backend is reachable.
func (s *Service) Health(ctx context.Context) error {
	return s.storage.Health(ctx)
}

// listCategory applies the upload slug rules so a category lists the same way
// it was written. Input with no usable characters is kept as is and matches nothing.
func listCategory(category string) string {
	raw := strings.TrimSpace(category)
	if slug := categorySlug(raw); slug != "" {
		return slug
	}
	return raw
}

func kindLabel(kind Kind) string {
	if kind == "" {
		return "unknown"
	}
	return string(kind)
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if code := CodeOf(err); code != "" {
		span.SetAttributes(attribute.String("media.error_code", string(code)))
	}
}
