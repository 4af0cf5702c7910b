package media

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/infrastructure/database/entities"
	"github.com/emerginginv/media-api/internal/utils/platformerrors"
)

// PostgresRepository persists the media catalog via PostgreSQL using GORM.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository creates a repository backed by the provided DB.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, asset *domain.Asset) error {
	row := toEntity(asset)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create media record",
			err,
			"5e0c7a1d-3f42-4b8e-9d61-0a7f2c9e4b13",
			map[string]any{"filename": row.Filename, "category": row.Category, "bucket": row.BucketName},
		)
	}
	asset.ID = row.ID
	asset.CreatedAt = row.CreatedAt
	asset.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	var row entities.MediaFile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewErrorWithContext(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"media record not found",
				err,
				"8b3d1f60-2c7e-4a95-b0d4-6e1a9f3c7d25",
				map[string]any{"media_id": id},
			)
		}
		return nil, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to get media by id",
			err,
			"c4a9e2b7-6d15-4f03-8e7a-1b5d3c9f0a48",
			map[string]any{"media_id": id},
		)
	}
	asset := toDomain(row)
	return &asset, nil
}

// List returns rows newest first. Ties on created_at are broken by id so
// repeated queries return the same order.
func (r *PostgresRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Asset, error) {
	query := r.db.WithContext(ctx).Model(&entities.MediaFile{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []entities.MediaFile
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list media",
			err,
			"1f6b8d3a-9e42-4c70-a5d1-7c2e0b9f8a64",
			map[string]any{"category": filter.Category, "featured": filter.FeaturedOnly, "limit": filter.Limit},
		)
	}

	assets := make([]domain.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, toDomain(row))
	}
	return assets, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MediaFile{})
	if result.Error != nil {
		return platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete media record",
			result.Error,
			"a7e2c5f9-0b38-4d16-9c4e-3f8a1d6b2e70",
			map[string]any{"media_id": id},
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"media record not found",
			nil,
			"d2f9b4a6-7c31-4e85-a0b7-5e9c1f3d8a26",
			map[string]any{"media_id": id},
		)
	}
	return nil
}

type categoryCount struct {
	Category string
	Total    int64
}

func (r *PostgresRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []categoryCount
	err := r.db.WithContext(ctx).
		Model(&entities.MediaFile{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count media by category",
			err,
			"6c1a8e3f-4d97-4b20-8f5e-2a9d7c0b1e53",
		)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Total
	}
	return counts, nil
}

func toEntity(asset *domain.Asset) entities.MediaFile {
	return entities.MediaFile{
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
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}
}

func toDomain(row entities.MediaFile) domain.Asset {
	return domain.Asset{
		ID:           row.ID,
		Filename:     row.Filename,
		OriginalName: row.OriginalName,
		FilePath:     row.FilePath,
		BucketName:   row.BucketName,
		FileSize:     row.FileSize,
		MimeType:     row.MimeType,
		AltText:      row.AltText,
		Title:        row.Title,
		Description:  row.Description,
		Category:     row.Category,
		IsFeatured:   row.IsFeatured,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
