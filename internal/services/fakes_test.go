package services

import (
	"context"
	"time"

	"livestock-service/internal/models"
	"livestock-service/internal/repository"

	"github.com/google/uuid"
)

// In-memory fakes shared by the service tests. They implement just enough of
// the repository interfaces to drive the service logic.

type fakeFarmRepo struct {
	farms map[string]*models.Farm // keyed by owner id
}

func newFakeFarmRepo() *fakeFarmRepo {
	return &fakeFarmRepo{farms: make(map[string]*models.Farm)}
}

func (f *fakeFarmRepo) addFarm(ownerID string) *models.Farm {
	farm := &models.Farm{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		FarmName: "ฟาร์มทดสอบ",
	}
	f.farms[ownerID] = farm
	return farm
}

func (f *fakeFarmRepo) Create(ctx context.Context, farm *models.Farm) error {
	if _, exists := f.farms[farm.OwnerID]; exists {
		return repository.ErrDuplicateFarm
	}
	if farm.ID == uuid.Nil {
		farm.ID = uuid.New()
	}
	f.farms[farm.OwnerID] = farm
	return nil
}

func (f *fakeFarmRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Farm, error) {
	for _, farm := range f.farms {
		if farm.ID == id {
			return farm, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeFarmRepo) GetByOwnerID(ctx context.Context, ownerID string) (*models.Farm, error) {
	farm, ok := f.farms[ownerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return farm, nil
}

func (f *fakeFarmRepo) GetMembers(ctx context.Context, farmID uuid.UUID) ([]models.FarmMember, error) {
	return nil, nil
}

type fakeAnimalRepo struct {
	animals     []models.Animal
	lastParams  repository.ListAnimalsParams
	updateCalls int
}

func (f *fakeAnimalRepo) Create(ctx context.Context, animal *models.Animal) error {
	for _, existing := range f.animals {
		if existing.FarmID == animal.FarmID && existing.TagID == animal.TagID {
			return repository.ErrDuplicateTag
		}
	}
	if animal.ID == uuid.Nil {
		animal.ID = uuid.New()
	}
	animal.CreatedAt = time.Now()
	animal.UpdatedAt = animal.CreatedAt
	if animal.Status == "" {
		animal.Status = models.AnimalActive
	}
	f.animals = append(f.animals, *animal)
	return nil
}

func (f *fakeAnimalRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Animal, error) {
	for i := range f.animals {
		if f.animals[i].ID == id {
			animal := f.animals[i]
			return &animal, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAnimalRepo) List(ctx context.Context, params repository.ListAnimalsParams) ([]models.Animal, error) {
	f.lastParams = params

	var out []models.Animal
	for _, animal := range f.animals {
		if animal.FarmID != params.FarmID {
			continue
		}
		if params.Cursor != nil {
			after := animal.CreatedAt.Before(params.Cursor.CreatedAt) ||
				(animal.CreatedAt.Equal(params.Cursor.CreatedAt) && animal.ID.String() < params.Cursor.ID.String())
			if !after {
				continue
			}
		}
		out = append(out, animal)
		if len(out) == params.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeAnimalRepo) ListByFarm(ctx context.Context, farmID uuid.UUID) ([]models.Animal, error) {
	var out []models.Animal
	for _, animal := range f.animals {
		if animal.FarmID == farmID {
			out = append(out, animal)
		}
	}
	return out, nil
}

func (f *fakeAnimalRepo) UpdateEditable(ctx context.Context, id uuid.UUID, req *models.UpdateAnimalRequest) error {
	f.updateCalls++
	for i := range f.animals {
		if f.animals[i].ID != id {
			continue
		}
		if req.Name != nil {
			f.animals[i].Name = req.Name
		}
		if req.Color != nil {
			f.animals[i].Color = req.Color
		}
		if req.WeightKg != nil {
			f.animals[i].WeightKg = req.WeightKg
		}
		if req.HeightCm != nil {
			height := int(*req.HeightCm)
			f.animals[i].HeightCm = &height
		}
		return nil
	}
	return repository.ErrNotFound
}

func (f *fakeAnimalRepo) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	for i := range f.animals {
		if f.animals[i].ID == id {
			f.animals[i].ImageURL = &imageURL
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeActivityRepo struct {
	activities          []models.Activity
	countByAnimalCalls  int
	countsByAnimal      map[uuid.UUID]int
	farmCounts          []repository.FarmStatusCount
	updateStatusCalls   int
	countByFarmRequests [][]uuid.UUID
}

func (f *fakeActivityRepo) Create(ctx context.Context, activity *models.Activity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	if activity.Status == "" {
		activity.Status = models.ActivityPending
	}
	f.activities = append(f.activities, *activity)
	return nil
}

func (f *fakeActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	for i := range f.activities {
		if f.activities[i].ID == id {
			activity := f.activities[i]
			return &activity, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeActivityRepo) List(ctx context.Context, params repository.ListActivitiesParams) ([]models.Activity, int, error) {
	var matched []models.Activity
	for _, activity := range f.activities {
		if activity.FarmID != params.FarmID {
			continue
		}
		if params.AnimalID != nil && activity.AnimalID != *params.AnimalID {
			continue
		}
		if params.Status != "" && string(activity.Status) != params.Status {
			continue
		}
		matched = append(matched, activity)
	}

	total := len(matched)
	if params.Offset >= total {
		return nil, total, nil
	}
	end := params.Offset + params.Limit
	if end > total {
		end = total
	}
	return matched[params.Offset:end], total, nil
}

func (f *fakeActivityRepo) UpdateStatus(ctx context.Context, activity *models.Activity) error {
	f.updateStatusCalls++
	for i := range f.activities {
		if f.activities[i].ID == activity.ID {
			f.activities[i] = *activity
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeActivityRepo) CountActionableByAnimal(ctx context.Context, farmID uuid.UUID) (map[uuid.UUID]int, error) {
	f.countByAnimalCalls++
	if f.countsByAnimal != nil {
		return f.countsByAnimal, nil
	}
	return map[uuid.UUID]int{}, nil
}

func (f *fakeActivityRepo) CountActionableByFarm(ctx context.Context, farmIDs []uuid.UUID) ([]repository.FarmStatusCount, error) {
	f.countByFarmRequests = append(f.countByFarmRequests, farmIDs)
	return f.farmCounts, nil
}

func (f *fakeActivityRepo) MarkOverdue(ctx context.Context, now time.Time) ([]models.Activity, error) {
	var flipped []models.Activity
	for i := range f.activities {
		a := &f.activities[i]
		if a.Status == models.ActivityPending && a.EffectiveDueDate().Before(now) {
			a.Status = models.ActivityOverdue
			flipped = append(flipped, *a)
		}
	}
	return flipped, nil
}
