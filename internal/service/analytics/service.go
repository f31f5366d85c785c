package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"alerting-platform/internal/domain"
	"alerting-platform/internal/repository"
)

type Stats struct {
	TotalAlerts       int64                           `json:"total_alerts"`
	ActiveAlerts      int64                           `json:"active_alerts"`
	SeverityBreakdown map[domain.Severity]int64       `json:"severity_breakdown"`
	DeliveryStats     map[domain.DeliveryStatus]int64 `json:"delivery_stats"`
	TotalSnoozed      int64                           `json:"total_snoozed"`
}

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	alertRepo    repository.AlertRepository
	deliveryRepo repository.DeliveryRepository
	prefRepo     repository.PreferenceRepository
	redis        *redis.Client
	cacheTTL     time.Duration
}

func NewService(
	alertRepo repository.AlertRepository,
	deliveryRepo repository.DeliveryRepository,
	prefRepo repository.PreferenceRepository,
	redis *redis.Client,
	cacheTTL time.Duration,
) Service {
	return &service{
		alertRepo:    alertRepo,
		deliveryRepo: deliveryRepo,
		prefRepo:     prefRepo,
		redis:        redis,
		cacheTTL:     cacheTTL,
	}
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	cacheKey := "analytics:stats"

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	totalAlerts, err := s.alertRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	activeAlerts, err := s.alertRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	severityBreakdown, err := s.alertRepo.CountBySeverity(ctx)
	if err != nil {
		return nil, err
	}

	deliveryStats, err := s.deliveryRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	totalSnoozed, err := s.prefRepo.CountSnoozedAlerts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalAlerts:       totalAlerts,
		ActiveAlerts:      activeAlerts,
		SeverityBreakdown: severityBreakdown,
		DeliveryStats:     deliveryStats,
		TotalSnoozed:      totalSnoozed,
	}

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.redis.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	return stats, nil
}
