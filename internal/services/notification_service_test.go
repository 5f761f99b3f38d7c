package services

import (
	"context"
	"testing"

	"livestock-service/internal/models"
	"livestock-service/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBadge_SumsPendingAndOverdue(t *testing.T) {
	farmRepo := newFakeFarmRepo()
	farm := farmRepo.addFarm("user-1")
	activityRepo := &fakeActivityRepo{
		farmCounts: []repository.FarmStatusCount{
			{FarmID: farm.ID, Status: models.ActivityPending, Count: 3},
			{FarmID: farm.ID, Status: models.ActivityOverdue, Count: 2},
		},
	}
	service := NewNotificationService(activityRepo, farmRepo, nil)

	summary, err := service.Badge(context.Background(), "user-1", false)

	assert.NoError(t, err)
	assert.Equal(t, 5, summary.BadgeCount, "badge is always pending + overdue")
	assert.Equal(t, 3, summary.Breakdown.Pending)
	assert.Equal(t, 2, summary.Breakdown.Overdue)
	if assert.Len(t, summary.FarmCounts, 1) {
		assert.Equal(t, farm.ID, summary.FarmCounts[0].FarmID)
	}
}

func TestBadge_NoFarmIsEmptyNotError(t *testing.T) {
	farmRepo := newFakeFarmRepo()
	service := NewNotificationService(&fakeActivityRepo{}, farmRepo, nil)

	summary, err := service.Badge(context.Background(), "user-without-farm", false)

	assert.NoError(t, err)
	assert.Equal(t, 0, summary.BadgeCount)
	assert.NotNil(t, summary.FarmCounts)
	assert.Empty(t, summary.FarmCounts)
}

func TestBadge_NoActivitiesIsZero(t *testing.T) {
	farmRepo := newFakeFarmRepo()
	farmRepo.addFarm("user-1")
	service := NewNotificationService(&fakeActivityRepo{}, farmRepo, nil)

	summary, err := service.Badge(context.Background(), "user-1", false)

	assert.NoError(t, err)
	assert.Equal(t, 0, summary.BadgeCount)
	assert.Equal(t, 0, summary.Breakdown.Pending)
	assert.Equal(t, 0, summary.Breakdown.Overdue)
}

func TestBadge_QueriesOwnFarmOnly(t *testing.T) {
	farmRepo := newFakeFarmRepo()
	farm := farmRepo.addFarm("user-1")
	farmRepo.addFarm("user-2")
	activityRepo := &fakeActivityRepo{}
	service := NewNotificationService(activityRepo, farmRepo, nil)

	_, err := service.Badge(context.Background(), "user-1", false)

	assert.NoError(t, err)
	if assert.Len(t, activityRepo.countByFarmRequests, 1) {
		assert.Equal(t, []uuid.UUID{farm.ID}, activityRepo.countByFarmRequests[0])
	}
}
