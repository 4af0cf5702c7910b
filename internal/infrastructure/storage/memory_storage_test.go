package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/emerginginv/media-api/internal/domain/media"
)

func TestMemoryStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorageWithBaseURL("http://localhost:8285/v1/files", zerolog.Nop())

	_, err := storage.Put(ctx, "website-images", "general/a.png", strings.NewReader(string(pngBytes)), int64(len(pngBytes)), domain.PutOptions{CacheControl: "max-age=3600"})
	require.NoError(t, err)

	assert.Equal(t, []string{"general/a.png"}, storage.Keys("website-images"))
	assert.Empty(t, storage.Keys("website-videos"))

	cacheControl, ok := storage.CacheControl("website-images", "general/a.png")
	require.True(t, ok)
	assert.Equal(t, "max-age=3600", cacheControl)

	reader, info, err := storage.Open(ctx, "website-images", "general/a.png")
	require.NoError(t, err)
	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)
	assert.Equal(t, "image/png", info.ContentType)

	assert.Equal(t, "http://localhost:8285/v1/files/website-images/general/a.png", storage.PublicURL("website-images", "general/a.png"))

	require.NoError(t, storage.Delete(ctx, "website-images", "general/a.png"))
	assert.ErrorIs(t, storage.Delete(ctx, "website-images", "general/a.png"), domain.ErrObjectNotFound)
}

func TestMemoryStorage_NoOverwrite(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorageWithBaseURL("", zerolog.Nop())

	_, err := storage.Put(ctx, "b", "k.txt", strings.NewReader("one"), 3, domain.PutOptions{ContentType: "text/plain"})
	require.NoError(t, err)
	_, err = storage.Put(ctx, "b", "k.txt", strings.NewReader("two"), 3, domain.PutOptions{})
	assert.ErrorIs(t, err, domain.ErrObjectExists)

	_, err = storage.Put(ctx, "b", "other.txt", strings.NewReader("two"), 9, domain.PutOptions{})
	assert.ErrorIs(t, err, domain.ErrSizeMismatch)
	assert.Equal(t, []string{"k.txt"}, storage.Keys("b"))
}
