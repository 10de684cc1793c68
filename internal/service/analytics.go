package service

import (
	"context"
	"time"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/repository"
)

type AnalyticsService struct {
	repository *repository.RequestLogRepository
}

func NewAnalyticsService(repo *repository.RequestLogRepository) *AnalyticsService {
	return &AnalyticsService{repository: repo}
}

// Holds analytics summary data
type AnalyticsSummary struct {
	From            int64                           `json:"from"`
	To              int64                           `json:"to"`
	TotalRequests   int64                           `json:"total_requests"`
	AvgResponseTime float64                         `json:"avg_response_time_ms"`
	ByCategory      map[models.StatusCategory]int64 `json:"by_category"`
	ErrorRate       float64                         `json:"error_rate"`
	TopEndpoints    []repository.EndpointCount      `json:"top_endpoints"`
}

// Retrieves analytics summary for a time range
func (s *AnalyticsService) GetSummary(ctx context.Context, from, to time.Time) (*AnalyticsSummary, error) {
	summary := &AnalyticsSummary{
		From:         from.Unix(),
		To:           to.Unix(),
		ByCategory:   map[models.StatusCategory]int64{},
		TopEndpoints: []repository.EndpointCount{},
	}

	totalRequests, err := s.repository.CountByTimeRange(ctx, summary.From, summary.To)
	if err != nil {
		return nil, err
	}
	summary.TotalRequests = totalRequests

	if totalRequests == 0 {
		return summary, nil
	}

	avgResponseTime, err := s.repository.GetAverageResponseTime(ctx, summary.From, summary.To)
	if err != nil {
		return nil, err
	}
	summary.AvgResponseTime = avgResponseTime

	byCategory, err := s.repository.CountByCategory(ctx, summary.From, summary.To)
	if err != nil {
		return nil, err
	}
	summary.ByCategory = byCategory

	errorCount := byCategory[models.StatusClientError] + byCategory[models.StatusServerError]
	summary.ErrorRate = float64(errorCount) / float64(totalRequests) * 100

	topEndpoints, err := s.repository.GetTopEndpoints(ctx, summary.From, summary.To, 10)
	if err != nil {
		return nil, err
	}
	summary.TopEndpoints = topEndpoints

	return summary, nil
}

func (s *AnalyticsService) GetLogs(ctx context.Context, from, to time.Time, page repository.Page) ([]models.RequestLog, error) {
	return s.repository.FindByTimeRange(ctx, from.Unix(), to.Unix(), page)
}

// Purge removes persisted request logs older than before.
func (s *AnalyticsService) Purge(ctx context.Context, before time.Time) (int64, error) {
	return s.repository.DeleteOldLogs(ctx, before.Unix())
}
