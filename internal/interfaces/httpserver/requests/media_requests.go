package requests

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/emerginginv/media-api/internal/domain/media"
)

// FilesField is the multipart field that carries uploaded files.
const FilesField = "files"

// legacyFileField is accepted when a client sends a single "file" part.
const legacyFileField = "file"

// sniffLen matches mimetype's default read limit.
const sniffLen = 3072

// UploadForm holds the metadata fields sent next to the files.
type UploadForm struct {
	Category    string `form:"category"`
	Title       string `form:"title"`
	AltText     string `form:"alt_text"`
	Description string `form:"description"`
	IsFeatured  bool   `form:"is_featured"`
}

// ToOptions converts the form into domain upload options.
func (f UploadForm) ToOptions() media.UploadOptions {
	return media.UploadOptions{
		Category:    strings.TrimSpace(f.Category),
		Title:       strings.TrimSpace(f.Title),
		AltText:     strings.TrimSpace(f.AltText),
		Description: strings.TrimSpace(f.Description),
		IsFeatured:  f.IsFeatured,
	}
}

// ListQuery is the query string of the listing endpoints.
type ListQuery struct {
	Category string `form:"category"`
	Limit    int    `form:"limit" binding:"omitempty,min=0,max=200"`
}

// FileHeaders returns the uploaded parts in form order.
func FileHeaders(form *multipart.Form) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	if headers := form.File[FilesField]; len(headers) > 0 {
		return headers
	}
	return form.File[legacyFileField]
}

// OpenFile opens a multipart part as a domain file. The declared content type
// is used when present; otherwise it is detected from the first bytes.
func OpenFile(header *multipart.FileHeader) (media.File, io.Closer, error) {
	part, err := header.Open()
	if err != nil {
		return media.File{}, nil, fmt.Errorf("open part %s: %w", header.Filename, err)
	}

	file := media.File{
		Name:     header.Filename,
		MimeType: NormalizeContentType(header.Header.Get("Content-Type")),
		Size:     header.Size,
		Body:     part,
	}
	if file.MimeType == "" || file.MimeType == "application/octet-stream" {
		head := make([]byte, sniffLen)
		n, readErr := io.ReadFull(part, head)
		if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
			_ = part.Close()
			return media.File{}, nil, fmt.Errorf("read part %s: %w", header.Filename, readErr)
		}
		head = head[:n]
		file.MimeType = NormalizeContentType(mimetype.Detect(head).String())
		file.Body = io.MultiReader(bytes.NewReader(head), part)
	}
	return file, part, nil
}

// NormalizeContentType lower-cases a media type and drops its parameters.
func NormalizeContentType(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		if i := strings.IndexByte(raw, ';'); i >= 0 {
			raw = raw[:i]
		}
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return mediaType
}
