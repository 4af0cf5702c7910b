package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
)

const backendS3 = "s3"

var errStorageDisabled = errors.New("media storage backend is not configured; set MEDIA_S3_* to enable uploads")

// s3API is the subset of the S3 client used here.
type s3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Storage stores media in S3-compatible buckets. The bucket is chosen per call.
type S3Storage struct {
	client    s3API
	buckets   []string
	publicURL func(bucket, key string) string
	log       zerolog.Logger
	disabled  bool
}

func NewS3Storage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*S3Storage, error) {
	logger := log.With().Str("component", "s3-storage").Logger()
	storage := &S3Storage{
		buckets:   []string{cfg.ImageBucket, cfg.VideoBucket},
		publicURL: s3PublicURLFunc(cfg),
		log:       logger,
	}

	if cfg.S3AccessKeyID == "" || cfg.S3SecretKey == "" {
		logger.Warn().Msg("MEDIA_S3_ACCESS_KEY_ID or MEDIA_S3_SECRET_ACCESS_KEY is not set; media uploads are disabled until configured")
		storage.disabled = true
		return storage, nil
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.S3Endpoint != "" {
			return aws.Endpoint{
				URL:               cfg.S3Endpoint,
				PartitionID:       "aws",
				SigningRegion:     cfg.S3Region,
				HostnameImmutable: cfg.S3UsePathStyle,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	storage.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
	})

	logger.Info().
		Str("endpoint", cfg.S3Endpoint).
		Str("region", cfg.S3Region).
		Strs("buckets", storage.buckets).
		Msg("s3 storage initialized")
	return storage, nil
}

// newS3StorageWithClient wires an arbitrary client, used by tests.
func newS3StorageWithClient(client s3API, buckets []string, publicBase string, log zerolog.Logger) *S3Storage {
	return &S3Storage{
		client:  client,
		buckets: buckets,
		publicURL: func(bucket, key string) string {
			return joinPublicURL(publicBase, bucket, key)
		},
		log: log,
	}
}

// s3PublicURLFunc prefers MEDIA_PUBLIC_BASE_URL, then the custom endpoint,
// then the AWS regional host.
func s3PublicURLFunc(cfg *config.Config) func(bucket, key string) string {
	switch {
	case cfg.PublicBaseURL != "":
		base := cfg.PublicBaseURL
		return func(bucket, key string) string { return joinPublicURL(base, bucket, key) }
	case cfg.S3Endpoint != "":
		base := cfg.S3Endpoint
		return func(bucket, key string) string { return joinPublicURL(base, bucket, key) }
	case cfg.S3UsePathStyle:
		base := fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.S3Region)
		return func(bucket, key string) string { return joinPublicURL(base, bucket, key) }
	default:
		region := cfg.S3Region
		return func(bucket, key string) string {
			return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, strings.TrimPrefix(key, "/"))
		}
	}
}

func (s *S3Storage) ensureEnabled() error {
	if s.disabled {
		return errStorageDisabled
	}
	return nil
}

// Put uploads the body. Without Overwrite the key is checked with HeadObject
// first; a concurrent writer of the same key between the two calls still wins.
func (s *S3Storage) Put(ctx context.Context, bucket, key string, body io.Reader, size int64, opts domain.PutOptions) (_ string, err error) {
	start := time.Now()
	defer func() { observe(backendS3, "put", start, err) }()

	if err := s.ensureEnabled(); err != nil {
		return "", err
	}
	if err := validateKey(bucket, key); err != nil {
		return "", err
	}

	// PutObject needs a seekable body to sign the payload.
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read upload body: %w", err)
	}
	if size >= 0 && int64(len(data)) != size {
		return "", fmt.Errorf("%w: read %d of %d bytes", domain.ErrSizeMismatch, len(data), size)
	}

	if !opts.Overwrite {
		exists, err := s.exists(ctx, bucket, key)
		if err != nil {
			return "", fmt.Errorf("check existing object: %w", err)
		}
		if exists {
			return "", domain.ErrObjectExists
		}
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if opts.CacheControl != "" {
		input.CacheControl = aws.String(opts.CacheControl)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", err
	}

	s.log.Debug().Str("bucket", bucket).Str("key", key).Int("bytes", len(data)).Msg("object stored")
	return key, nil
}

func (s *S3Storage) PublicURL(bucket, key string) string {
	return s.publicURL(bucket, key)
}

// Delete removes the object. S3 reports success for missing keys, so the key
// is looked up first to surface ErrObjectNotFound.
func (s *S3Storage) Delete(ctx context.Context, bucket, key string) (err error) {
	start := time.Now()
	defer func() { observe(backendS3, "delete", start, err) }()

	if err := s.ensureEnabled(); err != nil {
		return err
	}
	if err := validateKey(bucket, key); err != nil {
		return err
	}

	exists, err := s.exists(ctx, bucket, key)
	if err != nil {
		return fmt.Errorf("check object before delete: %w", err)
	}
	if !exists {
		return domain.ErrObjectNotFound
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) Open(ctx context.Context, bucket, key string) (_ io.ReadCloser, _ domain.ObjectInfo, err error) {
	start := time.Now()
	defer func() { observe(backendS3, "open", start, err) }()

	if err := s.ensureEnabled(); err != nil {
		return nil, domain.ObjectInfo{}, err
	}
	if err := validateKey(bucket, key); err != nil {
		return nil, domain.ObjectInfo{}, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, domain.ObjectInfo{}, domain.ErrObjectNotFound
		}
		return nil, domain.ObjectInfo{}, err
	}
	return out.Body, domain.ObjectInfo{
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
	}, nil
}

// Health checks that every configured bucket is reachable.
func (s *S3Storage) Health(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { observe(backendS3, "health", start, err) }()

	if err := s.ensureEnabled(); err != nil {
		return err
	}
	for _, bucket := range s.buckets {
		if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
			return fmt.Errorf("bucket %s: %w", bucket, err)
		}
	}
	return nil
}

func (s *S3Storage) exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isS3NotFound(err) {
		return false, nil
	}
	return false, err
}

func isS3NotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "404":
			return true
		}
	}
	return false
}
