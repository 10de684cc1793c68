package repository

import (
	"context"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/storage"
)

type TrackRepository struct {
	db *storage.Database
}

func NewTrackRepository(db *storage.Database) *TrackRepository {
	return &TrackRepository{db: db}
}

func (r *TrackRepository) Create(ctx context.Context, track *models.Track) error {
	return translate(r.db.DB.WithContext(ctx).Create(track).Error)
}

func (r *TrackRepository) FindByID(ctx context.Context, id string) (*models.Track, error) {
	return findByID[models.Track](ctx, r.db.DB, id)
}

func (r *TrackRepository) List(ctx context.Context, page Page) ([]models.Track, error) {
	return list[models.Track](ctx, r.db.DB, page)
}

// Retrieves the tracks uploaded by one user
func (r *TrackRepository) ListByUser(ctx context.Context, userID string, page Page) ([]models.Track, error) {
	page = page.Normalize()

	var tracks []models.Track
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&tracks).Error

	return tracks, err
}

func (r *TrackRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	return update[models.Track](ctx, r.db.DB, id, updates)
}

func (r *TrackRepository) Delete(ctx context.Context, id string) error {
	return remove[models.Track](ctx, r.db.DB, id)
}
