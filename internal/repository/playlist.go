package repository

import (
	"context"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/storage"
)

type PlaylistRepository struct {
	db *storage.Database
}

func NewPlaylistRepository(db *storage.Database) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Inserts a playlist. A second playlist with the same owner and name is ErrConflict.
func (r *PlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.Playlist{}).
		Where("user_id = ? AND name = ?", playlist.UserID, playlist.Name).
		Count(&count).Error

	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}

	return translate(r.db.DB.WithContext(ctx).Create(playlist).Error)
}

func (r *PlaylistRepository) FindByID(ctx context.Context, id string) (*models.Playlist, error) {
	return findByID[models.Playlist](ctx, r.db.DB, id)
}

func (r *PlaylistRepository) List(ctx context.Context, page Page) ([]models.Playlist, error) {
	return list[models.Playlist](ctx, r.db.DB, page)
}

func (r *PlaylistRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	return update[models.Playlist](ctx, r.db.DB, id, updates)
}

func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	return remove[models.Playlist](ctx, r.db.DB, id)
}
