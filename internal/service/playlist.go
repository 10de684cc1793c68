package service

import (
	"context"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/repository"
)

type PlaylistService struct {
	repository *repository.PlaylistRepository
}

func NewPlaylistService(repo *repository.PlaylistRepository) *PlaylistService {
	return &PlaylistService{repository: repo}
}

func (s *PlaylistService) Create(ctx context.Context, playlist *models.Playlist) error {
	return s.repository.Create(ctx, playlist)
}

func (s *PlaylistService) Get(ctx context.Context, id string) (*models.Playlist, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *PlaylistService) List(ctx context.Context, page repository.Page) ([]models.Playlist, error) {
	return s.repository.List(ctx, page)
}

func (s *PlaylistService) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Playlist, error) {
	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}
	if err := s.repository.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.repository.FindByID(ctx, id)
}

func (s *PlaylistService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}
