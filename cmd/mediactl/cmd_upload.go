package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	domain "github.com/emerginginv/media-api/internal/domain/media"
)

type uploadOptions struct {
	category    string
	title       string
	altText     string
	description string
	featured    bool
	contentType string
}

type uploadOutcome struct {
	Index    int                   `json:"index"`
	Filename string                `json:"filename"`
	Success  bool                  `json:"success"`
	Asset    *domain.UploadedAsset `json:"asset,omitempty"`
	Error    string                `json:"error,omitempty"`
	Code     string                `json:"code,omitempty"`
}

func newUploadCmd(global *globalOptions) *cobra.Command {
	opts := &uploadOptions{}

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload one or more media files",
		Long: `Upload validates each file against the image and video policy, stores it
in its bucket and records it in the catalog. Files are uploaded in the order
given; a failing file does not stop the rest. The command exits non-zero
when any file failed.

The content type comes from the file extension, or from the file contents
when the extension is unknown. Common aliases such as video/x-msvideo are
sent under the name the policy allows. Use --type to declare it yourself;
a declared type is sent unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, global, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "Category for every uploaded file (default general)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Title (defaults to the file name)")
	cmd.Flags().StringVar(&opts.altText, "alt", "", "Alt text")
	cmd.Flags().StringVar(&opts.description, "description", "", "Description")
	cmd.Flags().BoolVar(&opts.featured, "featured", false, "Mark the uploads as featured")
	cmd.Flags().StringVar(&opts.contentType, "type", "", "Content type to send instead of detecting it, for example video/avi")
	return cmd
}

func runUpload(cmd *cobra.Command, global *globalOptions, opts *uploadOptions, paths []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := serviceFactory(ctx, global)
	if err != nil {
		return err
	}
	defer cleanup()

	files := make([]domain.File, 0, len(paths))
	outcomes := make([]uploadOutcome, len(paths))
	pending := make([]int, 0, len(paths))
	for i, path := range paths {
		outcomes[i] = uploadOutcome{Index: i, Filename: filepath.Base(path)}
		file, closeFile, err := openUpload(path, opts.contentType)
		if err != nil {
			outcomes[i].Error = err.Error()
			continue
		}
		defer closeFile()
		files = append(files, file)
		pending = append(pending, i)
	}

	results := svc.UploadMany(ctx, files, domain.UploadOptions{
		Category:    opts.category,
		Title:       opts.title,
		AltText:     opts.altText,
		Description: opts.description,
		IsFeatured:  opts.featured,
	})
	for j, result := range results {
		outcome := &outcomes[pending[j]]
		if result.OK() {
			outcome.Success = true
			outcome.Asset = result.Asset
			continue
		}
		outcome.Error = result.Err.Error()
		outcome.Code = string(domain.CodeOf(result.Err))
	}

	failed := 0
	for _, o := range outcomes {
		if !o.Success {
			failed++
		}
	}

	out := cmd.OutOrStdout()
	if global.json {
		if err := writeJSON(out, map[string]any{
			"data":      outcomes,
			"succeeded": len(outcomes) - failed,
			"failed":    failed,
		}); err != nil {
			return err
		}
	} else {
		for _, o := range outcomes {
			if o.Success {
				fmt.Fprintf(out, "ok    %s -> %s (%s)\n", o.Filename, o.Asset.PublicURL, o.Asset.ID)
				continue
			}
			fmt.Fprintf(out, "fail  %s: %s\n", o.Filename, o.Error)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(outcomes))
	}
	return nil
}

func openUpload(path, declaredType string) (domain.File, func(), error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.File{}, nil, err
	}
	if info.IsDir() {
		return domain.File{}, nil, fmt.Errorf("%s is a directory", path)
	}

	contentType := declaredType
	if contentType == "" {
		contentType, err = detectContentType(path)
		if err != nil {
			return domain.File{}, nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.File{}, nil, err
	}
	return domain.File{
		Name:     filepath.Base(path),
		MimeType: stripParams(contentType),
		Size:     info.Size(),
		Body:     f,
	}, func() { _ = f.Close() }, nil
}

// contentTypeAliases maps registry and sniffer spellings onto the names the
// upload policy lists.
var contentTypeAliases = map[string]string{
	"video/x-msvideo": "video/avi",
	"video/msvideo":   "video/avi",
	"video/vnd.avi":   "video/avi",
	"image/jpg":       "image/jpeg",
	"image/pjpeg":     "image/jpeg",
}

// detectContentType prefers the extension mapping and falls back to sniffing
// the file contents.
func detectContentType(path string) (string, error) {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return canonicalType(byExt), nil
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect content type of %s: %w", path, err)
	}
	return canonicalType(mtype.String()), nil
}

func canonicalType(contentType string) string {
	mediaType := stripParams(contentType)
	if alias, ok := contentTypeAliases[strings.ToLower(mediaType)]; ok {
		return alias
	}
	return mediaType
}

func stripParams(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.TrimSpace(contentType)
	}
	return mediaType
}
