package worker

import (
	"context"
	"fmt"
	"time"

	"livestock-service/internal/event"
	"livestock-service/internal/models"
	"livestock-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher is the slice of the event publisher the sweeper needs.
type Publisher interface {
	PublishPushNotification(ctx context.Context, e event.NotificationEventPushModel) error
}

// OverdueSweeper periodically flips PENDING activities whose effective due
// date has passed to OVERDUE, and pushes one notification per affected farm.
// The flip is a single guarded UPDATE, so concurrent sweepers cannot double
// count the same activity.
type OverdueSweeper struct {
	activityRepo repository.IActivityRepository
	farmRepo     repository.IFarmRepository
	publisher    Publisher
	interval     time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

func NewOverdueSweeper(
	activityRepo repository.IActivityRepository,
	farmRepo repository.IFarmRepository,
	publisher Publisher,
	interval time.Duration,
	logger *zap.Logger,
) *OverdueSweeper {
	return &OverdueSweeper{
		activityRepo: activityRepo,
		farmRepo:     farmRepo,
		publisher:    publisher,
		interval:     interval,
		logger:       logger,
		now:          time.Now,
	}
}

// Run blocks until ctx is cancelled. One sweep fires immediately on start so
// a restart never leaves stale PENDING rows waiting a full interval.
func (s *OverdueSweeper) Run(ctx context.Context) {
	s.logger.Info("overdue sweeper started", zap.Duration("interval", s.interval))

	if err := s.Sweep(ctx); err != nil {
		s.logger.Error("overdue sweep failed", zap.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("overdue sweep failed", zap.Error(err))
			}
		case <-ctx.Done():
			s.logger.Info("overdue sweeper stopped")
			return
		}
	}
}

// Sweep performs a single pass and notifies affected farm owners.
func (s *OverdueSweeper) Sweep(ctx context.Context) error {
	flipped, err := s.activityRepo.MarkOverdue(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to mark overdue activities: %w", err)
	}
	if len(flipped) == 0 {
		return nil
	}

	s.logger.Info("activities marked overdue", zap.Int("count", len(flipped)))

	byFarm := make(map[uuid.UUID][]models.Activity)
	for _, a := range flipped {
		byFarm[a.FarmID] = append(byFarm[a.FarmID], a)
	}

	for farmID, activities := range byFarm {
		farm, err := s.farmRepo.GetByID(ctx, farmID)
		if err != nil {
			s.logger.Warn("skipping overdue notification, farm lookup failed",
				zap.String("farm_id", farmID.String()), zap.Error(err))
			continue
		}

		e := event.NotificationEventPushModel{
			LstUserIds: []string{farm.OwnerID},
			Title:      "มีกิจกรรมเลยกำหนด",
			Body:       fmt.Sprintf("คุณมีกิจกรรมเลยกำหนด %d รายการ", len(activities)),
			Data: map[string]string{
				"type":    string(event.ActivityOverdue),
				"farm_id": farmID.String(),
				"count":   fmt.Sprintf("%d", len(activities)),
			},
		}
		if err := s.publisher.PublishPushNotification(ctx, e); err != nil {
			s.logger.Error("failed to publish overdue notification",
				zap.String("farm_id", farmID.String()), zap.Error(err))
		}
	}

	return nil
}
