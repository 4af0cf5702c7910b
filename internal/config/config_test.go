package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "website-images", cfg.ImageBucket)
	assert.Equal(t, "website-videos", cfg.VideoBucket)
	assert.Equal(t, int64(50*1024*1024), cfg.MaxImageBytes)
	assert.Equal(t, int64(100*1024*1024), cfg.MaxVideoBytes)
	assert.Equal(t, "max-age=3600", cfg.CacheControl)
	assert.True(t, cfg.CompensateOrphans)
	assert.Equal(t, 20, cfg.RecentWindow)
	assert.Equal(t, ":8285", cfg.Addr())
	assert.True(t, cfg.IsS3Storage())
	assert.False(t, cfg.IsMemoryMetadata())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MEDIA_STORAGE_BACKEND", " Local ")
	t.Setenv("MEDIA_METADATA_BACKEND", "memory")
	t.Setenv("MEDIA_MAX_IMAGE_BYTES", "1024")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://emerginginv.com,https://admin.emerginginv.com")
	t.Setenv("MEDIA_ADMIN_API_KEY", " secret ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsLocalStorage())
	assert.True(t, cfg.IsMemoryMetadata())
	assert.Equal(t, int64(1024), cfg.MaxImageBytes)
	assert.Equal(t, []string{"https://emerginginv.com", "https://admin.emerginginv.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "secret", cfg.AdminAPIKey)
	assert.True(t, cfg.AdminAuthConfigured())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown storage backend", map[string]string{"MEDIA_STORAGE_BACKEND": "gcs"}},
		{"unknown metadata backend", map[string]string{"MEDIA_METADATA_BACKEND": "mysql"}},
		{"same bucket twice", map[string]string{"MEDIA_IMAGE_BUCKET": "media", "MEDIA_VIDEO_BUCKET": "media"}},
		{"auth without issuer", map[string]string{"AUTH_ENABLED": "true", "AUTH_JWKS_URL": "https://auth/jwks"}},
		{"auth without jwks", map[string]string{"AUTH_ENABLED": "true", "AUTH_ISSUER": "https://auth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
