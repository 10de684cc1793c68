package repository

import (
	"context"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a limit/offset window over a listing.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the page to [1, MaxPageSize] with a non-negative offset.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func findByID[T any](ctx context.Context, db *gorm.DB, id string) (*T, error) {
	var record T
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error

	if err != nil {
		return nil, translate(err)
	}

	return &record, nil
}

func list[T any](ctx context.Context, db *gorm.DB, page Page) ([]T, error) {
	page = page.Normalize()

	var records []T
	err := db.WithContext(ctx).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&records).Error

	return records, err
}

func update[T any](ctx context.Context, db *gorm.DB, id string, updates map[string]interface{}) error {
	var model T
	result := db.WithContext(ctx).
		Model(&model).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func remove[T any](ctx context.Context, db *gorm.DB, id string) error {
	var model T
	result := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
