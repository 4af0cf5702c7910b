package entities

import (
	"time"

	"gorm.io/gorm"

	"github.com/emerginginv/media-api/utils/mediaid"
)

// MediaFile is the persisted catalog row for one stored object.
type MediaFile struct {
	ID           string    `gorm:"type:varchar(40);primaryKey"`
	Filename     string    `gorm:"type:text;not null"`
	OriginalName string    `gorm:"type:text;not null"`
	FilePath     string    `gorm:"type:text;not null"`
	BucketName   string    `gorm:"type:varchar(63);not null"`
	FileSize     int64     `gorm:"not null"`
	MimeType     string    `gorm:"type:varchar(128);not null"`
	AltText      string    `gorm:"type:text;not null;default:''"`
	Title        string    `gorm:"type:text;not null;default:''"`
	Description  string    `gorm:"type:text;not null;default:''"`
	Category     string    `gorm:"type:varchar(64);not null;default:'general'"`
	IsFeatured   bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (MediaFile) TableName() string {
	return "media_files"
}

// BeforeCreate assigns a med_ id when the caller did not provide one.
func (m *MediaFile) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = mediaid.New()
	}
	return nil
}
