package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
	repo "github.com/emerginginv/media-api/internal/infrastructure/repository/media"
	"github.com/emerginginv/media-api/internal/infrastructure/storage"
)

var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

func useMemoryService(t *testing.T) *domain.Service {
	t.Helper()
	svc := domain.NewService(
		&config.Config{RecentWindow: 10},
		repo.NewInMemoryRepository(),
		storage.NewMemoryStorageWithBaseURL("http://media.test/v1/files", zerolog.Nop()),
		zerolog.Nop(),
	)
	previous := serviceFactory
	serviceFactory = func(context.Context, *globalOptions) (*domain.Service, func(), error) {
		return svc, func() {}, nil
	}
	t.Cleanup(func() { serviceFactory = previous })
	return svc
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestUpload_ReportsEveryFile(t *testing.T) {
	svc := useMemoryService(t)
	dir := t.TempDir()
	first := writeFile(t, dir, "first.png", pngBytes)
	notes := writeFile(t, dir, "notes.txt", []byte("plain text"))
	second := writeFile(t, dir, "second.png", pngBytes)

	out, err := execute(t, "--json", "upload", "--category", "blog-media", first, notes, second)
	require.EqualError(t, err, "1 of 3 uploads failed")

	var body struct {
		Data      []uploadOutcome `json:"data"`
		Succeeded int             `json:"succeeded"`
		Failed    int             `json:"failed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Len(t, body.Data, 3)
	assert.Equal(t, 2, body.Succeeded)
	assert.Equal(t, 1, body.Failed)

	assert.True(t, body.Data[0].Success)
	assert.Equal(t, "blog-media", body.Data[0].Asset.Category)
	assert.False(t, body.Data[1].Success)
	assert.Equal(t, "unsupported_type", body.Data[1].Code)
	assert.Equal(t, "notes.txt", body.Data[1].Filename)
	assert.True(t, body.Data[2].Success)

	assets, err := svc.ListByCategory(context.Background(), "blog-media", 0)
	require.NoError(t, err)
	assert.Len(t, assets, 2)
}

func TestUpload_MissingFile(t *testing.T) {
	useMemoryService(t)
	dir := t.TempDir()
	ok := writeFile(t, dir, "ok.png", pngBytes)

	out, err := execute(t, "upload", filepath.Join(dir, "missing.png"), ok)

	require.EqualError(t, err, "1 of 2 uploads failed")
	assert.Contains(t, out, "fail  missing.png")
	assert.Contains(t, out, "ok    ok.png -> http://media.test/v1/files/website-images/general/")
}

func TestUpload_DeclaredTypeOverride(t *testing.T) {
	useMemoryService(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "image.bin", pngBytes)

	_, err := execute(t, "upload", "--type", "image/png; charset=binary", path)

	require.NoError(t, err)
}

func TestListFeaturedAndDelete(t *testing.T) {
	svc := useMemoryService(t)
	dir := t.TempDir()
	hero := writeFile(t, dir, "hero.png", pngBytes)

	_, err := execute(t, "upload", "--featured", "--category", "hero-images", hero)
	require.NoError(t, err)

	out, err := execute(t, "featured")
	require.NoError(t, err)
	assert.Contains(t, out, "hero-images")
	assert.Contains(t, out, "hero.png")

	out, err = execute(t, "--json", "list", "--category", "hero-images")
	require.NoError(t, err)
	var listed struct {
		Data  []domain.Asset `json:"data"`
		Count int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Equal(t, 1, listed.Count)

	out, err = execute(t, "delete", listed.Data[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted "+listed.Data[0].ID)

	remaining, err := svc.ListByCategory(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = execute(t, "delete", listed.Data[0].ID)
	assert.EqualError(t, err, "1 of 1 deletes failed")
}

func TestCategories(t *testing.T) {
	useMemoryService(t)

	out, err := execute(t, "categories")

	require.NoError(t, err)
	assert.Contains(t, out, "hero-images")
	assert.Contains(t, out, "legal-documents")
}

func TestStripParams(t *testing.T) {
	assert.Equal(t, "image/png", stripParams("image/png; charset=binary"))
	assert.Equal(t, "video/mp4", stripParams(" video/mp4 "))
	assert.Equal(t, "not a type;;", stripParams("not a type;;"))
}

func TestDetectContentType(t *testing.T) {
	dir := t.TempDir()

	byExt, err := detectContentType(writeFile(t, dir, "a.png", pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "image/png", byExt)

	sniffed, err := detectContentType(writeFile(t, dir, "noext", pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "image/png", sniffed)
}

func TestDetectContentType_AVIUsesPolicyName(t *testing.T) {
	dir := t.TempDir()
	avi := append([]byte("RIFF\x00\x10\x00\x00AVI LIST"), make([]byte, 64)...)

	byExt, err := detectContentType(writeFile(t, dir, "clip.avi", avi))
	require.NoError(t, err)
	assert.Equal(t, "video/avi", byExt)

	sniffed, err := detectContentType(writeFile(t, dir, "clip", avi))
	require.NoError(t, err)
	assert.Equal(t, "video/avi", sniffed)
}

func TestCanonicalType(t *testing.T) {
	tests := map[string]string{
		"video/x-msvideo":           "video/avi",
		"video/vnd.avi":             "video/avi",
		"image/jpg":                 "image/jpeg",
		"image/pjpeg":               "image/jpeg",
		"Video/X-MSVideo":           "video/avi",
		"image/png":                 "image/png",
		"text/plain; charset=utf-8": "text/plain",
	}
	for in, want := range tests {
		assert.Equal(t, want, canonicalType(in), in)
	}
}

func TestOpenUpload_DeclaredTypeIsKept(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clip.avi", []byte("RIFF\x00\x00\x00\x00AVI "))

	file, closeFile, err := openUpload(path, "video/x-msvideo")
	require.NoError(t, err)
	defer closeFile()
	assert.Equal(t, "video/x-msvideo", file.MimeType)
}
