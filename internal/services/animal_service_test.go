package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"livestock-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newAnimalServiceFixture(ownerID string) (IAnimalService, *fakeFarmRepo, *fakeAnimalRepo, *fakeActivityRepo) {
	farmRepo := newFakeFarmRepo()
	farmRepo.addFarm(ownerID)
	animalRepo := &fakeAnimalRepo{}
	activityRepo := &fakeActivityRepo{}
	service := NewAnimalService(animalRepo, activityRepo, NewFarmService(farmRepo), nil)
	return service, farmRepo, animalRepo, activityRepo
}

func seedAnimals(repo *fakeAnimalRepo, farmID uuid.UUID, n int) []models.Animal {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		repo.animals = append(repo.animals, models.Animal{
			ID:        uuid.New(),
			FarmID:    farmID,
			TagID:     fmt.Sprintf("TH-%03d", i),
			Type:      models.AnimalWaterBuffalo,
			Gender:    models.GenderFemale,
			Status:    models.AnimalActive,
			CreatedAt: base.Add(-time.Duration(i) * time.Hour), // newest first
		})
	}
	return repo.animals
}

func TestAnimalList_MergesNotificationCounts(t *testing.T) {
	service, farmRepo, animalRepo, activityRepo := newAnimalServiceFixture("user-1")
	farmID := farmRepo.farms["user-1"].ID
	animals := seedAnimals(animalRepo, farmID, 3)

	activityRepo.countsByAnimal = map[uuid.UUID]int{
		animals[0].ID: 2,
		animals[2].ID: 1,
	}

	result, err := service.List(context.Background(), "user-1", AnimalListQuery{})

	assert.NoError(t, err)
	assert.Len(t, result.Animals, 3)
	assert.Equal(t, 2, result.Animals[0].NotificationCount)
	assert.Equal(t, 0, result.Animals[1].NotificationCount, "animal without activities defaults to zero")
	assert.Equal(t, 1, result.Animals[2].NotificationCount)
	assert.Equal(t, 3, result.PendingActivitiesCount, "header total is the sum of per-animal counts")
}

func TestAnimalList_UsesOneAggregateQuery(t *testing.T) {
	service, farmRepo, animalRepo, activityRepo := newAnimalServiceFixture("user-1")
	seedAnimals(animalRepo, farmRepo.farms["user-1"].ID, 15)

	_, err := service.List(context.Background(), "user-1", AnimalListQuery{})

	assert.NoError(t, err)
	assert.Equal(t, 1, activityRepo.countByAnimalCalls, "counts must come from one grouped query, not one per animal")
}

func TestAnimalList_PaginatesAtTwenty(t *testing.T) {
	service, farmRepo, animalRepo, _ := newAnimalServiceFixture("user-1")
	seedAnimals(animalRepo, farmRepo.farms["user-1"].ID, 25)

	result, err := service.List(context.Background(), "user-1", AnimalListQuery{})

	assert.NoError(t, err)
	assert.Len(t, result.Animals, 20)
	assert.True(t, result.HasMore)
	assert.NotNil(t, result.NextCursor)

	// Second page picks up after the cursor.
	second, err := service.List(context.Background(), "user-1", AnimalListQuery{Cursor: *result.NextCursor})
	assert.NoError(t, err)
	assert.Len(t, second.Animals, 5)
	assert.False(t, second.HasMore)
	assert.Nil(t, second.NextCursor)
}

func TestAnimalList_ExactPageBoundary(t *testing.T) {
	service, farmRepo, animalRepo, _ := newAnimalServiceFixture("user-1")
	seedAnimals(animalRepo, farmRepo.farms["user-1"].ID, 20)

	result, err := service.List(context.Background(), "user-1", AnimalListQuery{})

	assert.NoError(t, err)
	assert.Len(t, result.Animals, 20)
	assert.False(t, result.HasMore, "exactly one full page means no next page")
	assert.Nil(t, result.NextCursor)
}

func TestAnimalList_InvalidCursor(t *testing.T) {
	service, _, _, _ := newAnimalServiceFixture("user-1")

	_, err := service.List(context.Background(), "user-1", AnimalListQuery{Cursor: "garbage!!"})

	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestAnimalGet_ForbiddenAcrossFarms(t *testing.T) {
	service, farmRepo, animalRepo, _ := newAnimalServiceFixture("user-1")
	farmRepo.addFarm("user-2")
	otherFarmID := farmRepo.farms["user-2"].ID
	animals := seedAnimals(animalRepo, otherFarmID, 1)

	_, err := service.Get(context.Background(), "user-1", animals[0].ID)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAnimalGet_NotFound(t *testing.T) {
	service, _, _, _ := newAnimalServiceFixture("user-1")

	_, err := service.Get(context.Background(), "user-1", uuid.New())

	assert.ErrorIs(t, err, ErrAnimalNotFound)
}

func TestAnimalCreate_ForbiddenForForeignFarm(t *testing.T) {
	service, farmRepo, _, _ := newAnimalServiceFixture("user-1")
	farmRepo.addFarm("user-2")

	req := &models.CreateAnimalRequest{
		FarmID: farmRepo.farms["user-2"].ID.String(),
		TagID:  "TH-001",
		Type:   string(models.AnimalWaterBuffalo),
	}
	gender := string(models.GenderFemale)
	req.Gender = &gender

	_, err := service.Create(context.Background(), "user-1", req)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAnimalCreate_TruncatesHeightToInt(t *testing.T) {
	service, farmRepo, _, _ := newAnimalServiceFixture("user-1")

	height := 145.0
	gender := string(models.GenderMale)
	req := &models.CreateAnimalRequest{
		FarmID:   farmRepo.farms["user-1"].ID.String(),
		TagID:    "TH-001",
		Type:     string(models.AnimalWaterBuffalo),
		Gender:   &gender,
		HeightCm: &height,
	}

	animal, err := service.Create(context.Background(), "user-1", req)

	assert.NoError(t, err)
	if assert.NotNil(t, animal.HeightCm) {
		assert.Equal(t, 145, *animal.HeightCm)
	}
	assert.Equal(t, models.AnimalActive, animal.Status)
}

func TestAnimalUpdate_IsIdempotent(t *testing.T) {
	service, farmRepo, animalRepo, _ := newAnimalServiceFixture("user-1")
	animals := seedAnimals(animalRepo, farmRepo.farms["user-1"].ID, 1)

	name := "เจ้าทุย"
	weight := 420.5
	req := &models.UpdateAnimalRequest{Name: &name, WeightKg: &weight}

	first, err := service.Update(context.Background(), "user-1", animals[0].ID, req)
	assert.NoError(t, err)

	second, err := service.Update(context.Background(), "user-1", animals[0].ID, req)
	assert.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.WeightKg, second.WeightKg)
}
