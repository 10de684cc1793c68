package repository

import (
	"context"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/storage"
)

type UserRepository struct {
	db *storage.Database
}

func NewUserRepository(db *storage.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Inserts a new user. Returns ErrConflict when the username or email is taken.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? OR email = ?", user.Username, user.Email).
		Count(&count).Error

	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}

	return translate(r.db.DB.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return findByID[models.User](ctx, r.db.DB, id)
}

// Retrieves user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.DB.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, page Page) ([]models.User, error) {
	return list[models.User](ctx, r.db.DB, page)
}

func (r *UserRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	return update[models.User](ctx, r.db.DB, id, updates)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return remove[models.User](ctx, r.db.DB, id)
}
