package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Track struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   *string   `json:"description,omitempty"`
	AudioURL      string    `gorm:"not null" json:"audio_url"`
	CoverImageURL *string   `json:"cover_image_url,omitempty"`
	Genre         *string   `gorm:"index" json:"genre,omitempty"`
	IsPublic      bool      `gorm:"not null" json:"is_public"`
	Likes         uint32    `gorm:"default:0" json:"likes"`
	Dislikes      uint32    `gorm:"default:0" json:"dislikes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (t *Track) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Track) TableName() string {
	return "tracks"
}
