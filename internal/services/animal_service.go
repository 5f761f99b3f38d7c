package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"livestock-service/internal/models"
	"livestock-service/internal/repository"

	"github.com/google/uuid"
)

const animalPageSize = 20

// PhotoStore is the slice of the object store the animal service needs.
type PhotoStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (string, error)
}

// AnimalListQuery is the decoded query string of GET /api/animals.
type AnimalListQuery struct {
	Cursor string
	Search string
	Status string
}

type IAnimalService interface {
	List(ctx context.Context, userID string, query AnimalListQuery) (*models.AnimalListResult, error)
	Get(ctx context.Context, userID string, animalID uuid.UUID) (*models.Animal, error)
	Create(ctx context.Context, userID string, req *models.CreateAnimalRequest) (*models.Animal, error)
	Update(ctx context.Context, userID string, animalID uuid.UUID, req *models.UpdateAnimalRequest) (*models.Animal, error)
	AttachPhoto(ctx context.Context, userID string, animalID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type AnimalService struct {
	animalRepo   repository.IAnimalRepository
	activityRepo repository.IActivityRepository
	farmService  IFarmService
	photoStore   PhotoStore
}

func NewAnimalService(
	animalRepo repository.IAnimalRepository,
	activityRepo repository.IActivityRepository,
	farmService IFarmService,
	photoStore PhotoStore,
) IAnimalService {
	return &AnimalService{
		animalRepo:   animalRepo,
		activityRepo: activityRepo,
		farmService:  farmService,
		photoStore:   photoStore,
	}
}

// List returns one cursor page with the per-animal notification counts merged
// in. The counts come from a single grouped aggregate for the whole farm;
// animals absent from the aggregate default to zero.
func (s *AnimalService) List(ctx context.Context, userID string, query AnimalListQuery) (*models.AnimalListResult, error) {
	farm, err := s.farmService.GetOwnedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	var cursor *models.ListCursor
	if query.Cursor != "" {
		decoded, err := models.DecodeListCursor(query.Cursor)
		if err != nil {
			return nil, ErrInvalidCursor
		}
		cursor = &decoded
	}

	// Fetch one extra row to detect whether another page exists.
	animals, err := s.animalRepo.List(ctx, repository.ListAnimalsParams{
		FarmID: farm.ID,
		Cursor: cursor,
		Search: query.Search,
		Status: query.Status,
		Limit:  animalPageSize + 1,
	})
	if err != nil {
		return nil, err
	}

	hasMore := len(animals) > animalPageSize
	if hasMore {
		animals = animals[:animalPageSize]
	}

	counts, err := s.activityRepo.CountActionableByAnimal(ctx, farm.ID)
	if err != nil {
		return nil, err
	}

	page := make([]models.AnimalWithNotifications, 0, len(animals))
	for _, animal := range animals {
		page = append(page, models.AnimalWithNotifications{
			Animal:            animal,
			NotificationCount: counts[animal.ID],
		})
	}

	pendingTotal := 0
	for _, n := range counts {
		pendingTotal += n
	}

	var nextCursor *string
	if hasMore && len(animals) > 0 {
		last := animals[len(animals)-1]
		token := models.ListCursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
		nextCursor = &token
	}

	return &models.AnimalListResult{
		Animals:                page,
		NextCursor:             nextCursor,
		HasMore:                hasMore,
		PendingActivitiesCount: pendingTotal,
	}, nil
}

func (s *AnimalService) Get(ctx context.Context, userID string, animalID uuid.UUID) (*models.Animal, error) {
	animal, err := s.animalRepo.GetByID(ctx, animalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAnimalNotFound
		}
		return nil, err
	}

	farm, err := s.farmService.GetOwnedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}
	if animal.FarmID != farm.ID {
		return nil, ErrForbidden
	}

	return animal, nil
}

func (s *AnimalService) Create(ctx context.Context, userID string, req *models.CreateAnimalRequest) (*models.Animal, error) {
	farm, err := s.farmService.GetOwnedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	farmID, err := uuid.Parse(req.FarmID)
	if err != nil {
		return nil, fmt.Errorf("invalid farm id: %w", err)
	}
	if farmID != farm.ID {
		return nil, ErrForbidden
	}

	animal := &models.Animal{
		FarmID:    farmID,
		TagID:     req.TagID,
		Name:      req.Name,
		Type:      models.AnimalType(req.Type),
		Gender:    models.Gender(*req.Gender),
		Status:    models.AnimalActive,
		BirthDate: req.BirthDate,
		Color:     req.Color,
		WeightKg:  req.WeightKg,
		MotherTag: req.MotherTag,
		FatherTag: req.FatherTag,
		Genome:    req.Genome,
		ImageURL:  req.ImageURL,
	}
	if req.HeightCm != nil {
		height := int(*req.HeightCm)
		animal.HeightCm = &height
	}

	if err := s.animalRepo.Create(ctx, animal); err != nil {
		return nil, err
	}

	return animal, nil
}

// Update applies the editable subset and returns the authoritative record.
// Submitting the same update twice converges on the same final state.
func (s *AnimalService) Update(ctx context.Context, userID string, animalID uuid.UUID, req *models.UpdateAnimalRequest) (*models.Animal, error) {
	if _, err := s.Get(ctx, userID, animalID); err != nil {
		return nil, err
	}

	if err := s.animalRepo.UpdateEditable(ctx, animalID, req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAnimalNotFound
		}
		return nil, err
	}

	animal, err := s.animalRepo.GetByID(ctx, animalID)
	if err != nil {
		return nil, err
	}

	return animal, nil
}

func (s *AnimalService) AttachPhoto(ctx context.Context, userID string, animalID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := s.Get(ctx, userID, animalID); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("%s/%d%s", animalID, time.Now().UnixNano(), path.Ext(filename))
	url, err := s.photoStore.UploadFile(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	if err := s.animalRepo.SetImageURL(ctx, animalID, url); err != nil {
		return "", err
	}

	return url, nil
}
