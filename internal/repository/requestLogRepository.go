package repository

import (
	"context"
	"database/sql"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/storage"
)

// Timestamps are unix seconds, matching models.RequestLog.
type RequestLogRepository struct {
	db *storage.Database
}

func NewRequestLogRepository(db *storage.Database) *RequestLogRepository {
	return &RequestLogRepository{db: db}
}

// Inserts multiple request logs (for batch insertion)
func (r *RequestLogRepository) CreateBatch(ctx context.Context, logs []models.RequestLog) error {
	if len(logs) == 0 {
		return nil
	}

	return r.db.DB.WithContext(ctx).Create(&logs).Error
}

// Retrieves logs within a time range
func (r *RequestLogRepository) FindByTimeRange(ctx context.Context, from, to int64, page Page) ([]models.RequestLog, error) {
	page = page.Normalize()

	var logs []models.RequestLog
	err := r.db.DB.WithContext(ctx).
		Where("timestamp BETWEEN ? AND ?", from, to).
		Order("timestamp DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&logs).Error

	return logs, err
}

// Counts logs in a time range
func (r *RequestLogRepository) CountByTimeRange(ctx context.Context, from, to int64) (int64, error) {
	var count int64

	err := r.db.DB.WithContext(ctx).
		Model(&models.RequestLog{}).
		Where("timestamp BETWEEN ? AND ?", from, to).
		Count(&count).Error

	return count, err
}

// Calculates average response time
func (r *RequestLogRepository) GetAverageResponseTime(ctx context.Context, from, to int64) (float64, error) {
	var avg sql.NullFloat64

	err := r.db.DB.WithContext(ctx).
		Model(&models.RequestLog{}).
		Where("timestamp BETWEEN ? AND ?", from, to).
		Select("AVG(response_time_ms)").
		Scan(&avg).Error

	if err != nil || !avg.Valid {
		return 0, err
	}

	return avg.Float64, nil
}

// Counts logs per status category
func (r *RequestLogRepository) CountByCategory(ctx context.Context, from, to int64) (map[models.StatusCategory]int64, error) {
	rows, err := r.db.DB.WithContext(ctx).
		Model(&models.RequestLog{}).
		Select("status_category, COUNT(*) as count").
		Where("timestamp BETWEEN ? AND ?", from, to).
		Group("status_category").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.StatusCategory]int64)
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[models.StatusCategory(category)] = count
	}

	return counts, rows.Err()
}

type EndpointCount struct {
	URI   string `json:"uri"`
	Count int64  `json:"count"`
}

// Returns most frequently accessed endpoints
func (r *RequestLogRepository) GetTopEndpoints(ctx context.Context, from, to int64, limit int) ([]EndpointCount, error) {
	var results []EndpointCount

	err := r.db.DB.WithContext(ctx).
		Model(&models.RequestLog{}).
		Select("uri, COUNT(*) as count").
		Where("timestamp BETWEEN ? AND ?", from, to).
		Group("uri").
		Order("count DESC").
		Limit(limit).
		Scan(&results).Error

	return results, err
}

// Deletes logs older than the specified time
func (r *RequestLogRepository) DeleteOldLogs(ctx context.Context, before int64) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Where("timestamp < ?", before).
		Delete(&models.RequestLog{})

	return result.RowsAffected, result.Error
}
