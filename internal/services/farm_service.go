package services

import (
	"context"
	"errors"
	"fmt"

	"livestock-service/internal/models"
	"livestock-service/internal/repository"

	"livestock-service/utils"
)

type IFarmService interface {
	GetOrCreateFarm(ctx context.Context, userID string) (*models.Farm, error)
	CreateFarm(ctx context.Context, userID string, req *models.CreateFarmRequest) (*models.Farm, error)
	GetOwnedFarm(ctx context.Context, userID string) (*models.Farm, error)
}

type FarmService struct {
	farmRepo repository.IFarmRepository
}

func NewFarmService(farmRepo repository.IFarmRepository) IFarmService {
	return &FarmService{farmRepo: farmRepo}
}

// GetOrCreateFarm returns the caller's farm, creating a default one on first
// visit. Creation races resolve through the unique owner constraint: lose the
// race, fetch the winner's row.
func (s *FarmService) GetOrCreateFarm(ctx context.Context, userID string) (*models.Farm, error) {
	farm, err := s.farmRepo.GetByOwnerID(ctx, userID)
	if err == nil {
		return farm, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	code := "FARM-" + utils.GenerateRandomStringWithLength(6)
	farm = &models.Farm{
		OwnerID:  userID,
		FarmName: "ฟาร์มของฉัน",
		FarmCode: &code,
	}

	if err := s.farmRepo.Create(ctx, farm); err != nil {
		if errors.Is(err, repository.ErrDuplicateFarm) {
			return s.farmRepo.GetByOwnerID(ctx, userID)
		}
		return nil, fmt.Errorf("failed to create farm: %w", err)
	}

	return farm, nil
}

func (s *FarmService) CreateFarm(ctx context.Context, userID string, req *models.CreateFarmRequest) (*models.Farm, error) {
	code := "FARM-" + utils.GenerateRandomStringWithLength(6)
	farm := &models.Farm{
		OwnerID:  userID,
		FarmName: req.FarmName,
		Province: req.Province,
		FarmCode: &code,
	}

	if err := s.farmRepo.Create(ctx, farm); err != nil {
		if errors.Is(err, repository.ErrDuplicateFarm) {
			return s.farmRepo.GetByOwnerID(ctx, userID)
		}
		return nil, fmt.Errorf("failed to create farm: %w", err)
	}

	return farm, nil
}

// GetOwnedFarm is the authorization primitive: every resource service calls
// this before touching farm-scoped data.
func (s *FarmService) GetOwnedFarm(ctx context.Context, userID string) (*models.Farm, error) {
	farm, err := s.farmRepo.GetByOwnerID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFarmNotFound
		}
		return nil, err
	}
	return farm, nil
}
