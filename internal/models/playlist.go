package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// A user cannot own two playlists with the same name.
type Playlist struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_playlist_owner_name" json:"user_id"`
	Name            string    `gorm:"not null;uniqueIndex:idx_playlist_owner_name" json:"name"`
	Description     *string   `json:"description,omitempty"`
	CoverImageURL   *string   `json:"cover_image_url,omitempty"`
	IsPublic        bool      `gorm:"not null" json:"is_public"`
	IsCollaborative bool      `gorm:"default:false" json:"is_collaborative"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Playlist) TableName() string {
	return "playlists"
}
