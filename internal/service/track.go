package service

import (
	"context"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/repository"
)

type TrackService struct {
	repository *repository.TrackRepository
}

func NewTrackService(repo *repository.TrackRepository) *TrackService {
	return &TrackService{repository: repo}
}

func (s *TrackService) Create(ctx context.Context, track *models.Track) error {
	return s.repository.Create(ctx, track)
}

func (s *TrackService) Get(ctx context.Context, id string) (*models.Track, error) {
	return s.repository.FindByID(ctx, id)
}

// List filters by owner when userID is not empty.
func (s *TrackService) List(ctx context.Context, userID string, page repository.Page) ([]models.Track, error) {
	if userID != "" {
		return s.repository.ListByUser(ctx, userID, page)
	}
	return s.repository.List(ctx, page)
}

func (s *TrackService) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Track, error) {
	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}
	if err := s.repository.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.repository.FindByID(ctx, id)
}

func (s *TrackService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}
