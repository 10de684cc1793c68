package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/repository"
	"github.com/aman-churiwal/libretune/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrNoUpdates = errors.New("no fields to update")

type UserService struct {
	repository *repository.UserRepository
	redis      *storage.RedisClient
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewUserService(repo *repository.UserRepository, redis *storage.RedisClient, cacheTTL time.Duration, logger *zap.Logger) *UserService {
	return &UserService{
		repository: repo,
		redis:      redis,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

type CreateUserInput struct {
	Username   string
	Email      string
	Password   string
	Bio        *string
	CreatedVia models.CreatedVia
}

type UpdateUserInput struct {
	Username      *string
	Email         *string
	Password      *string
	Bio           *string
	EmailVerified *bool
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	createdVia := in.CreatedVia
	if createdVia == "" {
		createdVia = models.CreatedViaWeb
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Bio:          in.Bio,
		CreatedVia:   createdVia,
	}

	if err := s.repository.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Get reads through the redis cache.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	key := cacheKey(id)

	cached, err := s.redis.Get(ctx, key)
	if err == nil && cached != "" {
		var user models.User
		if err := json.Unmarshal([]byte(cached), &user); err == nil {
			return &user, nil
		}
	} else if err != nil && !errors.Is(err, storage.Nil) {
		s.logger.Warn("user cache read failed", zap.String("id", id), zap.Error(err))
	}

	user, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		if err := s.redis.Set(ctx, key, payload, s.cacheTTL); err != nil {
			s.logger.Warn("user cache write failed", zap.String("id", id), zap.Error(err))
		}
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context, page repository.Page) ([]models.User, error) {
	return s.repository.List(ctx, page)
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	updates := make(map[string]interface{})
	if in.Username != nil {
		updates["username"] = *in.Username
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}
	if in.EmailVerified != nil {
		updates["email_verified"] = *in.EmailVerified
	}
	if in.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = string(hashedPassword)
	}

	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}

	if err := s.repository.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, id)

	return s.Get(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, id)

	return nil
}

func (s *UserService) invalidateCache(ctx context.Context, id string) {
	if err := s.redis.Del(ctx, cacheKey(id)); err != nil {
		s.logger.Warn("user cache invalidation failed", zap.String("id", id), zap.Error(err))
	}
}

func cacheKey(id string) string {
	return fmt.Sprintf("user:cache:%s", id)
}
