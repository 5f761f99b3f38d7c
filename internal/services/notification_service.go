package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"livestock-service/internal/models"
	"livestock-service/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// badgeCacheTTL keeps the badge aggregate out of the hot path for repeated
// polls; manual refresh from the client bypasses it.
const badgeCacheTTL = 30 * time.Second

type INotificationService interface {
	Badge(ctx context.Context, userID string, bypassCache bool) (*models.BadgeSummary, error)
}

type NotificationService struct {
	activityRepo repository.IActivityRepository
	farmRepo     repository.IFarmRepository
	cache        *redis.Client
}

func NewNotificationService(
	activityRepo repository.IActivityRepository,
	farmRepo repository.IFarmRepository,
	cache *redis.Client,
) INotificationService {
	return &NotificationService{
		activityRepo: activityRepo,
		farmRepo:     farmRepo,
		cache:        cache,
	}
}

// Badge computes the farm-wide notification badge from one grouped aggregate.
// badgeCount is always pending + overdue.
func (s *NotificationService) Badge(ctx context.Context, userID string, bypassCache bool) (*models.BadgeSummary, error) {
	cacheKey := "badge:" + userID

	if s.cache != nil && !bypassCache {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var summary models.BadgeSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	farm, err := s.farmRepo.GetByOwnerID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// No farm yet: an empty badge, not an error.
			return &models.BadgeSummary{FarmCounts: []models.FarmBadgeCount{}}, nil
		}
		return nil, err
	}

	rows, err := s.activityRepo.CountActionableByFarm(ctx, []uuid.UUID{farm.ID})
	if err != nil {
		return nil, err
	}

	perFarm := map[uuid.UUID]*models.FarmBadgeCount{}
	for _, row := range rows {
		entry, ok := perFarm[row.FarmID]
		if !ok {
			entry = &models.FarmBadgeCount{FarmID: row.FarmID}
			perFarm[row.FarmID] = entry
		}
		switch row.Status {
		case models.ActivityPending:
			entry.Pending = row.Count
		case models.ActivityOverdue:
			entry.Overdue = row.Count
		}
	}

	summary := &models.BadgeSummary{FarmCounts: []models.FarmBadgeCount{}}
	for _, entry := range perFarm {
		summary.Breakdown.Pending += entry.Pending
		summary.Breakdown.Overdue += entry.Overdue
		summary.FarmCounts = append(summary.FarmCounts, *entry)
	}
	summary.BadgeCount = summary.Breakdown.Pending + summary.Breakdown.Overdue

	if s.cache != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, badgeCacheTTL).Err(); err != nil {
				slog.Warn("failed to cache badge summary", "error", err)
			}
		}
	}

	return summary, nil
}
