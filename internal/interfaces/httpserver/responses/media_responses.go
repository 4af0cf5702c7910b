package responses

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/utils/platformerrors"
)

// AssetResponse is the public shape of a catalog entry.
type AssetResponse struct {
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
	PublicURL    string    `json:"public_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UploadedAssetResponse adds the storage location returned by an upload.
type UploadedAssetResponse struct {
	AssetResponse
	StorageKey string `json:"storage_key"`
	Bucket     string `json:"bucket"`
}

// UploadItemResponse is one entry of a multi-file upload.
type UploadItemResponse struct {
	Index    int                             `json:"index"`
	Filename string                          `json:"filename"`
	Success  bool                            `json:"success"`
	Asset    *UploadedAssetResponse          `json:"asset,omitempty"`
	Error    *platformerrors.HTTPErrorDetail `json:"error,omitempty"`
}

// UploadManyResponse wraps per-file results.
type UploadManyResponse struct {
	Data      []UploadItemResponse `json:"data"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
}

// ListResponse wraps a list of assets.
type ListResponse struct {
	Data  []AssetResponse `json:"data"`
	Count int             `json:"count"`
}

// RecentResponse wraps the recent uploads window.
type RecentResponse struct {
	Data []UploadedAssetResponse `json:"data"`
}

// CategoriesResponse wraps category usage.
type CategoriesResponse struct {
	Data []media.CategoryUsage `json:"data"`
}

// DeleteResponse acknowledges a delete.
type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func BuildAssetResponse(asset media.Asset) AssetResponse {
	return AssetResponse{
		ID:           asset.ID,
		Filename:     asset.Filename,
		OriginalName: asset.OriginalName,
		FilePath:     asset.FilePath,
		BucketName:   asset.BucketName,
		FileSize:     asset.FileSize,
		MimeType:     asset.MimeType,
		AltText:      asset.AltText,
		Title:        asset.Title,
		Description:  asset.Description,
		Category:     asset.Category,
		IsFeatured:   asset.IsFeatured,
		PublicURL:    asset.PublicURL,
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}
}

func BuildUploadedAssetResponse(asset media.UploadedAsset) UploadedAssetResponse {
	return UploadedAssetResponse{
		AssetResponse: BuildAssetResponse(asset.Asset),
		StorageKey:    asset.StorageKey,
		Bucket:        asset.Bucket,
	}
}

func BuildListResponse(assets []media.Asset) ListResponse {
	data := make([]AssetResponse, 0, len(assets))
	for _, asset := range assets {
		data = append(data, BuildAssetResponse(asset))
	}
	return ListResponse{Data: data, Count: len(data)}
}

func BuildRecentResponse(items []media.UploadedAsset) RecentResponse {
	data := make([]UploadedAssetResponse, 0, len(items))
	for _, item := range items {
		data = append(data, BuildUploadedAssetResponse(item))
	}
	return RecentResponse{Data: data}
}

// BuildUploadManyResponse renders results in input order. Failed items carry
// the same error detail a single upload would return.
func BuildUploadManyResponse(c *gin.Context, results []media.UploadResult) UploadManyResponse {
	resp := UploadManyResponse{Data: make([]UploadItemResponse, 0, len(results))}
	for _, result := range results {
		item := UploadItemResponse{
			Index:    result.Index,
			Filename: result.Filename,
			Success:  result.OK(),
		}
		if result.OK() {
			asset := BuildUploadedAssetResponse(*result.Asset)
			item.Asset = &asset
			resp.Succeeded++
		} else {
			_, item.Error = ErrorDetail(c, result.Err)
			resp.Failed++
		}
		resp.Data = append(resp.Data, item)
	}
	return resp
}
