package services

import (
	"context"
	"errors"
	"time"

	"livestock-service/internal/models"
	"livestock-service/internal/repository"

	"github.com/google/uuid"
)

// ActivityListQuery is the decoded query string of GET /api/activities.
type ActivityListQuery struct {
	Page     int
	Limit    int
	Status   string
	AnimalID *uuid.UUID
}

type IActivityService interface {
	List(ctx context.Context, userID string, query ActivityListQuery) (*models.ActivityListResult, error)
	Create(ctx context.Context, userID string, req *models.CreateActivityRequest) (*models.Activity, error)
	UpdateStatus(ctx context.Context, userID string, activityID uuid.UUID, req *models.UpdateActivityStatusRequest) (*models.Activity, error)
}

type ActivityService struct {
	activityRepo repository.IActivityRepository
	animalRepo   repository.IAnimalRepository
	farmService  IFarmService
}

func NewActivityService(
	activityRepo repository.IActivityRepository,
	animalRepo repository.IAnimalRepository,
	farmService IFarmService,
) IActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		animalRepo:   animalRepo,
		farmService:  farmService,
	}
}

func (s *ActivityService) List(ctx context.Context, userID string, query ActivityListQuery) (*models.ActivityListResult, error) {
	farm, err := s.farmService.GetOwnedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	activities, total, err := s.activityRepo.List(ctx, repository.ListActivitiesParams{
		FarmID:   farm.ID,
		AnimalID: query.AnimalID,
		Status:   query.Status,
		Limit:    query.Limit,
		Offset:   (query.Page - 1) * query.Limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := (total + query.Limit - 1) / query.Limit
	if activities == nil {
		activities = []models.Activity{}
	}

	return &models.ActivityListResult{
		Activities: activities,
		Pagination: models.Pagination{
			Page:       query.Page,
			Limit:      query.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *ActivityService) Create(ctx context.Context, userID string, req *models.CreateActivityRequest) (*models.Activity, error) {
	farm, err := s.farmService.GetOwnedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	animalID, err := uuid.Parse(req.AnimalID)
	if err != nil {
		return nil, ErrAnimalNotFound
	}

	animal, err := s.animalRepo.GetByID(ctx, animalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAnimalNotFound
		}
		return nil, err
	}
	if animal.FarmID != farm.ID {
		return nil, ErrForbidden
	}

	activity := &models.Activity{
		FarmID:       farm.ID,
		AnimalID:     animalID,
		Title:        req.Title,
		Description:  req.Description,
		ActivityDate: req.ActivityDate,
		DueDate:      req.DueDate,
		Status:       models.ActivityPending,
		CreatedBy:    userID,
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

// UpdateStatus applies the activity lifecycle. PENDING and OVERDUE items can
// be completed or cancelled; completed and cancelled items are terminal.
// Re-submitting the current status is accepted unchanged, so retried PUTs
// converge instead of failing.
func (s *ActivityService) UpdateStatus(ctx context.Context, userID string, activityID uuid.UUID, req *models.UpdateActivityStatusRequest) (*models.Activity, error) {
	farm, err := s.farmService.GetOwnedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	if activity.FarmID != farm.ID {
		return nil, ErrForbidden
	}

	target := models.ActivityStatus(req.Status)
	if target == activity.Status {
		return activity, nil
	}

	switch activity.Status {
	case models.ActivityPending, models.ActivityOverdue:
		// open state, fall through to transition
	default:
		return nil, ErrInvalidTransition
	}

	switch target {
	case models.ActivityCompleted:
		now := time.Now()
		activity.Status = models.ActivityCompleted
		activity.CompletedBy = &userID
		activity.CompletedAt = &now
		activity.StatusReason = req.StatusReason
	case models.ActivityCancelled:
		activity.Status = models.ActivityCancelled
		activity.StatusReason = req.StatusReason
	default:
		return nil, ErrInvalidTransition
	}

	if err := s.activityRepo.UpdateStatus(ctx, activity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	return activity, nil
}
