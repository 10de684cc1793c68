package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatedVia records the sign-up channel of a user.
type CreatedVia string

const (
	CreatedViaWeb        CreatedVia = "web"
	CreatedViaMobile     CreatedVia = "mobile"
	CreatedViaGoogle     CreatedVia = "google"
	CreatedViaSpotify    CreatedVia = "spotify"
	CreatedViaSoundCloud CreatedVia = "soundcloud"
)

type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Username      string     `gorm:"uniqueIndex;not null;size:64" json:"username"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	Bio           *string    `json:"bio,omitempty"`
	CreatedVia    CreatedVia `gorm:"default:'web';size:16" json:"created_via"`
	EmailVerified bool       `gorm:"default:false" json:"email_verified"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	return nil
}

func (User) TableName() string {
	return "users"
}
