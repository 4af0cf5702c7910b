package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
)

type mockS3 struct {
	headObjectFn   func(ctx context.Context, in *s3.HeadObjectInput) (*s3.HeadObjectOutput, error)
	putObjectFn    func(ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error)
	getObjectFn    func(ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error)
	deleteObjectFn func(ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error)
	headBucketFn   func(ctx context.Context, in *s3.HeadBucketInput) (*s3.HeadBucketOutput, error)
}

func (m *mockS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	return m.headObjectFn(ctx, in)
}

func (m *mockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return m.putObjectFn(ctx, in)
}

func (m *mockS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.getObjectFn(ctx, in)
}

func (m *mockS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	return m.deleteObjectFn(ctx, in)
}

func (m *mockS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return m.headBucketFn(ctx, in)
}

func missingObject(context.Context, *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	return nil, &types.NotFound{}
}

func TestS3Storage_PutNewObject(t *testing.T) {
	var put *s3.PutObjectInput
	var body []byte
	client := &mockS3{
		headObjectFn: missingObject,
		putObjectFn: func(_ context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
			put = in
			body, _ = io.ReadAll(in.Body)
			return &s3.PutObjectOutput{}, nil
		},
	}
	storage := newS3StorageWithClient(client, []string{"website-images"}, "https://cdn.example.com", zerolog.Nop())

	path, err := storage.Put(context.Background(), "website-images", "general/a.png", strings.NewReader("data"), 4, domain.PutOptions{
		ContentType:  "image/png",
		CacheControl: "max-age=3600",
	})
	require.NoError(t, err)
	assert.Equal(t, "general/a.png", path)
	require.NotNil(t, put)
	assert.Equal(t, "website-images", aws.ToString(put.Bucket))
	assert.Equal(t, "general/a.png", aws.ToString(put.Key))
	assert.Equal(t, "image/png", aws.ToString(put.ContentType))
	assert.Equal(t, "max-age=3600", aws.ToString(put.CacheControl))
	assert.Equal(t, int64(4), aws.ToInt64(put.ContentLength))
	assert.Equal(t, "data", string(body))
}

func TestS3Storage_PutExistingKey(t *testing.T) {
	client := &mockS3{
		headObjectFn: func(context.Context, *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
			return &s3.HeadObjectOutput{}, nil
		},
		putObjectFn: func(context.Context, *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
			t.Fatal("PutObject must not be called for an existing key")
			return nil, nil
		},
	}
	storage := newS3StorageWithClient(client, nil, "", zerolog.Nop())

	_, err := storage.Put(context.Background(), "website-images", "general/a.png", strings.NewReader("data"), 4, domain.PutOptions{})
	assert.ErrorIs(t, err, domain.ErrObjectExists)
}

func TestS3Storage_PutUpstreamFailure(t *testing.T) {
	client := &mockS3{
		headObjectFn: missingObject,
		putObjectFn: func(context.Context, *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
			return nil, errors.New("503 slow down")
		},
	}
	storage := newS3StorageWithClient(client, nil, "", zerolog.Nop())

	_, err := storage.Put(context.Background(), "website-images", "general/a.png", strings.NewReader("data"), 4, domain.PutOptions{})
	assert.EqualError(t, err, "503 slow down")
}

func TestS3Storage_DeleteMissing(t *testing.T) {
	client := &mockS3{
		headObjectFn: missingObject,
		deleteObjectFn: func(context.Context, *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
			t.Fatal("DeleteObject must not be called for a missing key")
			return nil, nil
		},
	}
	storage := newS3StorageWithClient(client, nil, "", zerolog.Nop())

	assert.ErrorIs(t, storage.Delete(context.Background(), "website-images", "general/a.png"), domain.ErrObjectNotFound)
}

func TestS3Storage_DeleteExisting(t *testing.T) {
	deleted := ""
	client := &mockS3{
		headObjectFn: func(context.Context, *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
			return &s3.HeadObjectOutput{}, nil
		},
		deleteObjectFn: func(_ context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
			deleted = aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
			return &s3.DeleteObjectOutput{}, nil
		},
	}
	storage := newS3StorageWithClient(client, nil, "", zerolog.Nop())

	require.NoError(t, storage.Delete(context.Background(), "website-videos", "blog-media/v.mp4"))
	assert.Equal(t, "website-videos/blog-media/v.mp4", deleted)
}

func TestS3Storage_Open(t *testing.T) {
	client := &mockS3{
		getObjectFn: func(_ context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
			if aws.ToString(in.Key) == "missing.png" {
				return nil, &types.NoSuchKey{}
			}
			return &s3.GetObjectOutput{
				Body:          io.NopCloser(strings.NewReader("data")),
				ContentType:   aws.String("image/png"),
				ContentLength: aws.Int64(4),
			}, nil
		},
	}
	storage := newS3StorageWithClient(client, nil, "", zerolog.Nop())

	reader, info, err := storage.Open(context.Background(), "website-images", "a.png")
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, domain.ObjectInfo{ContentType: "image/png", Size: 4}, info)

	_, _, err = storage.Open(context.Background(), "website-images", "missing.png")
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)
}

func TestS3Storage_HealthChecksEveryBucket(t *testing.T) {
	var checked []string
	client := &mockS3{
		headBucketFn: func(_ context.Context, in *s3.HeadBucketInput) (*s3.HeadBucketOutput, error) {
			checked = append(checked, aws.ToString(in.Bucket))
			if aws.ToString(in.Bucket) == "website-videos" {
				return nil, errors.New("access denied")
			}
			return &s3.HeadBucketOutput{}, nil
		},
	}
	storage := newS3StorageWithClient(client, []string{"website-images", "website-videos"}, "", zerolog.Nop())

	err := storage.Health(context.Background())
	assert.EqualError(t, err, "bucket website-videos: access denied")
	assert.Equal(t, []string{"website-images", "website-videos"}, checked)
}

func TestS3PublicURLFunc(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "public base",
			cfg:  config.Config{PublicBaseURL: "https://cdn.example.com/", S3Endpoint: "http://minio:9000"},
			want: "https://cdn.example.com/website-images/general/a.png",
		},
		{
			name: "custom endpoint",
			cfg:  config.Config{S3Endpoint: "http://minio:9000"},
			want: "http://minio:9000/website-images/general/a.png",
		},
		{
			name: "aws path style",
			cfg:  config.Config{S3Region: "eu-west-1", S3UsePathStyle: true},
			want: "https://s3.eu-west-1.amazonaws.com/website-images/general/a.png",
		},
		{
			name: "aws virtual host",
			cfg:  config.Config{S3Region: "eu-west-1"},
			want: "https://website-images.s3.eu-west-1.amazonaws.com/general/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			assert.Equal(t, tt.want, s3PublicURLFunc(&cfg)("website-images", "general/a.png"))
		})
	}
}

func TestIsS3NotFound(t *testing.T) {
	assert.True(t, isS3NotFound(&types.NotFound{}))
	assert.True(t, isS3NotFound(&types.NoSuchKey{}))
	assert.False(t, isS3NotFound(errors.New("boom")))
}
