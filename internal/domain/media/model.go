package media

import (
	"io"
	"time"
)

// Kind classifies an asset by the allow-list its MIME type belongs to.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// DefaultCategory is used when an upload does not name one.
const DefaultCategory = "general"

// Asset is the catalog entry for one stored object.
type Asset struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `json:"file_path"`
	BucketName   string    `json:"bucket_name"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	AltText      string    `json:"alt_text"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// PublicURL is derived from BucketName and Filename on every read.
	PublicURL string `json:"public_url"`
}

// UploadedAsset is returned by a successful upload.
type UploadedAsset struct {
	Asset
	StorageKey string `json:"storage_key"`
	Bucket     string `json:"bucket"`
}

// File is a candidate upload. Size and MimeType are the declared values the
// policy is checked against.
type File struct {
	Name     string
	MimeType string
	Size     int64
	Body     io.Reader
}

// UploadOptions carries the optional metadata of an upload.
type UploadOptions struct {
	Category    string
	Title       string
	AltText     string
	Description string
	IsFeatured  bool
}

func (o UploadOptions) withDefaults(file File) UploadOptions {
	if o.Category == "" {
		o.Category = DefaultCategory
	}
	if o.Title == "" {
		o.Title = file.Name
	}
	return o
}

// UploadResult is the per-file outcome of UploadMany.
type UploadResult struct {
	Index    int            `json:"index"`
	Filename string         `json:"filename"`
	Asset    *UploadedAsset `json:"asset,omitempty"`
	Err      error          `json:"-"`
}

// OK reports whether the upload succeeded.
func (r UploadResult) OK() bool {
	return r.Err == nil && r.Asset != nil
}

// ListFilter narrows catalog queries. Results are always ordered by creation time, newest first.
type ListFilter struct {
	Category     string
	FeaturedOnly bool
	Limit        int
}

// CategoryUsage describes a category and how many assets it holds.
type CategoryUsage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Suggested   bool   `json:"suggested"`
	AssetCount  int64  `json:"asset_count"`
}

// PutOptions controls an object write.
type PutOptions struct {
	ContentType  string
	CacheControl string
	Overwrite    bool
}

// ObjectInfo describes an object opened for reading.
type ObjectInfo struct {
	ContentType string
	Size        int64
}
