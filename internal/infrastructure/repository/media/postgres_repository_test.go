package media

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/utils/platformerrors"
	"github.com/emerginginv/media-api/utils/mediaid"
)

type capturedStatement struct {
	SQL  string
	Vars []any
}

// newDryRunRepository builds gorm statements against the postgres dialect
// without a server and records each one.
func newDryRunRepository(t *testing.T) (*PostgresRepository, *[]capturedStatement) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	var statements []capturedStatement
	capture := func(tx *gorm.DB) {
		statements = append(statements, capturedStatement{SQL: tx.Statement.SQL.String(), Vars: tx.Statement.Vars})
	}
	cb := db.Callback()
	require.NoError(t, cb.Query().After("gorm:query").Register("test:capture", capture))
	require.NoError(t, cb.Create().After("gorm:create").Register("test:capture", capture))
	require.NoError(t, cb.Delete().After("gorm:delete").Register("test:capture", capture))
	require.NoError(t, cb.Row().After("gorm:row").Register("test:capture", capture))

	return NewPostgresRepository(db), &statements
}

func lastStatement(t *testing.T, statements *[]capturedStatement) capturedStatement {
	t.Helper()
	require.NotEmpty(t, *statements)
	return (*statements)[len(*statements)-1]
}

func TestPostgresRepository_ListQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   domain.ListFilter
		contains []string
		absent   []string
		vars     []any
	}{
		{
			name:     "no filter",
			filter:   domain.ListFilter{},
			contains: []string{`FROM "media_files"`, "ORDER BY created_at DESC,id DESC"},
			absent:   []string{"WHERE", "LIMIT"},
		},
		{
			name:     "category featured and limit",
			filter:   domain.ListFilter{Category: "hero-images", FeaturedOnly: true, Limit: 5},
			contains: []string{"category = $1", "is_featured = $2", "ORDER BY created_at DESC,id DESC", "LIMIT "},
			vars:     []any{"hero-images", true, 5},
		},
		{
			name:     "featured only",
			filter:   domain.ListFilter{FeaturedOnly: true},
			contains: []string{"is_featured = $1"},
			absent:   []string{"category =", "LIMIT"},
			vars:     []any{true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, statements := newDryRunRepository(t)

			assets, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Empty(t, assets)

			stmt := lastStatement(t, statements)
			for _, want := range tt.contains {
				assert.Contains(t, stmt.SQL, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, stmt.SQL, unwanted)
			}
			for _, v := range tt.vars {
				assert.Contains(t, stmt.Vars, v)
			}
		})
	}
}

func TestPostgresRepository_GetByIDQuery(t *testing.T) {
	repo, statements := newDryRunRepository(t)

	_, _ = repo.GetByID(context.Background(), "med_01HZX")

	stmt := lastStatement(t, statements)
	assert.Contains(t, stmt.SQL, `FROM "media_files" WHERE id = $1`)
	assert.Contains(t, stmt.SQL, "LIMIT ")
	assert.Equal(t, "med_01HZX", stmt.Vars[0])
}

func TestPostgresRepository_CreateAssignsIDAndTimestamps(t *testing.T) {
	repo, statements := newDryRunRepository(t)
	asset := &domain.Asset{
		Filename:   "team-photos/1_abc123_group.png",
		BucketName: "website-images",
		MimeType:   "image/png",
		Category:   "team-photos",
	}

	require.NoError(t, repo.Create(context.Background(), asset))

	assert.True(t, mediaid.IsValid(asset.ID))
	assert.False(t, asset.CreatedAt.IsZero())
	stmt := lastStatement(t, statements)
	assert.True(t, strings.HasPrefix(stmt.SQL, `INSERT INTO "media_files"`), stmt.SQL)
	assert.Contains(t, stmt.Vars, asset.ID)
	assert.Contains(t, stmt.Vars, "team-photos/1_abc123_group.png")
}

func TestPostgresRepository_DeleteWithoutRowsIsNotFound(t *testing.T) {
	repo, statements := newDryRunRepository(t)

	err := repo.Delete(context.Background(), "med_gone")

	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
	assert.Equal(t, "med_gone", platformerrors.GetPlatformError(err).Context["media_id"])
	stmt := lastStatement(t, statements)
	assert.Contains(t, stmt.SQL, `DELETE FROM "media_files" WHERE id = $1`)
	assert.Equal(t, []any{"med_gone"}, stmt.Vars)
}

func TestPostgresRepository_CountByCategoryQuery(t *testing.T) {
	repo, statements := newDryRunRepository(t)

	_, _ = repo.CountByCategory(context.Background())

	stmt := lastStatement(t, statements)
	assert.Contains(t, stmt.SQL, "SELECT category, COUNT(*) AS total")
	assert.Contains(t, stmt.SQL, `FROM "media_files"`)
	assert.Contains(t, stmt.SQL, "GROUP BY")
	assert.Contains(t, stmt.SQL, "category")
}
