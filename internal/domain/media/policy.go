package media

import (
	"sort"
	"strconv"

	"github.com/emerginginv/media-api/internal/config"
)

const mib = 1024 * 1024

var (
	defaultImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/svg+xml"}
	defaultVideoTypes = []string{"video/mp4", "video/webm", "video/quicktime", "video/avi"}
)

// Policy holds the allow-lists, ceilings and bucket mapping applied to uploads.
type Policy struct {
	ImageTypes    map[string]struct{}
	VideoTypes    map[string]struct{}
	MaxImageBytes int64
	MaxVideoBytes int64
	ImageBucket   string
	VideoBucket   string
	CacheControl  string
}

// DefaultPolicy returns the stock limits: 50 MiB images, 100 MiB videos.
func DefaultPolicy() Policy {
	return Policy{
		ImageTypes:    toSet(defaultImageTypes),
		VideoTypes:    toSet(defaultVideoTypes),
		MaxImageBytes: 50 * mib,
		MaxVideoBytes: 100 * mib,
		ImageBucket:   "website-images",
		VideoBucket:   "website-videos",
		CacheControl:  "max-age=3600",
	}
}

// NewPolicy builds the policy from configuration.
func NewPolicy(cfg *config.Config) Policy {
	p := DefaultPolicy()
	if cfg.MaxImageBytes > 0 {
		p.MaxImageBytes = cfg.MaxImageBytes
	}
	if cfg.MaxVideoBytes > 0 {
		p.MaxVideoBytes = cfg.MaxVideoBytes
	}
	if cfg.ImageBucket != "" {
		p.ImageBucket = cfg.ImageBucket
	}
	if cfg.VideoBucket != "" {
		p.VideoBucket = cfg.VideoBucket
	}
	p.CacheControl = cfg.CacheControl
	return p
}

// Classify maps a MIME type to its kind. The match is exact.
func (p Policy) Classify(mimeType string) (Kind, bool) {
	if _, ok := p.ImageTypes[mimeType]; ok {
		return KindImage, true
	}
	if _, ok := p.VideoTypes[mimeType]; ok {
		return KindVideo, true
	}
	return "", false
}

// Validate checks the declared type and size of a file. It has no side effects.
func (p Policy) Validate(file File) (Kind, error) {
	kind, ok := p.Classify(file.MimeType)
	if !ok {
		return "", newError(CodeUnsupportedType, nil, "unsupported file type: %s", file.MimeType)
	}
	if file.Size < 0 {
		return "", newError(CodeInvalidRequest, nil, "file size must not be negative")
	}
	limit := p.MaxBytes(kind)
	if file.Size > limit {
		return "", newError(CodeFileTooLarge, nil, "file size exceeds %sMB limit", formatMB(limit))
	}
	return kind, nil
}

// MaxBytes returns the size ceiling of a kind.
func (p Policy) MaxBytes(kind Kind) int64 {
	if kind == KindVideo {
		return p.MaxVideoBytes
	}
	return p.MaxImageBytes
}

// Bucket returns the bucket a kind is stored in.
func (p Policy) Bucket(kind Kind) string {
	if kind == KindVideo {
		return p.VideoBucket
	}
	return p.ImageBucket
}

// Buckets lists every bucket the policy writes to.
func (p Policy) Buckets() []string {
	return []string{p.ImageBucket, p.VideoBucket}
}

// AllowedTypes lists the accepted MIME types of a kind.
func (p Policy) AllowedTypes(kind Kind) []string {
	set := p.ImageTypes
	if kind == KindVideo {
		set = p.VideoTypes
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func formatMB(limit int64) string {
	if limit%mib == 0 {
		return strconv.FormatInt(limit/mib, 10)
	}
	return strconv.FormatFloat(float64(limit)/mib, 'f', -1, 64)
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
