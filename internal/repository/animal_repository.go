package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"livestock-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ListAnimalsParams narrows the animal list query. Cursor is the keyset
// position of the previous page; Limit is the page size the caller wants
// (the repository fetches exactly Limit rows, callers ask for one extra to
// detect another page).
type ListAnimalsParams struct {
	FarmID uuid.UUID
	Cursor *models.ListCursor
	Search string
	Status string
	Limit  int
}

type IAnimalRepository interface {
	Create(ctx context.Context, animal *models.Animal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Animal, error)
	List(ctx context.Context, params ListAnimalsParams) ([]models.Animal, error)
	ListByFarm(ctx context.Context, farmID uuid.UUID) ([]models.Animal, error)
	UpdateEditable(ctx context.Context, id uuid.UUID, req *models.UpdateAnimalRequest) error
	SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error
}

type AnimalRepository struct {
	db *sqlx.DB
}

func NewAnimalRepository(db *sqlx.DB) IAnimalRepository {
	return &AnimalRepository{db: db}
}

func (r *AnimalRepository) Create(ctx context.Context, animal *models.Animal) error {
	if animal.ID == uuid.Nil {
		animal.ID = uuid.New()
	}
	animal.CreatedAt = time.Now()
	animal.UpdatedAt = animal.CreatedAt
	if animal.Status == "" {
		animal.Status = models.AnimalActive
	}
	if animal.Gender == "" {
		animal.Gender = models.GenderFemale
	}

	query := `
		INSERT INTO animals (
			id, farm_id, tag_id, name, animal_type, gender, status,
			birth_date, color, weight_kg, height_cm, mother_tag, father_tag,
			genome, image_url, created_at, updated_at
		) VALUES (
			:id, :farm_id, :tag_id, :name, :animal_type, :gender, :status,
			:birth_date, :color, :weight_kg, :height_cm, :mother_tag, :father_tag,
			:genome, :image_url, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, animal)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation: (farm_id, tag_id)
				return ErrDuplicateTag
			case "23503": // foreign_key_violation: farm_id
				return ErrInvalidReference
			}
		}
		return fmt.Errorf("failed to create animal: %w", err)
	}

	return nil
}

func (r *AnimalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Animal, error) {
	var animal models.Animal
	err := r.db.GetContext(ctx, &animal, `SELECT * FROM animals WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get animal: %w", err)
	}
	return &animal, nil
}

// List returns one keyset page ordered by (created_at, id) DESC. The composite
// row comparison keeps the order total, so pages stay stable under concurrent
// inserts.
func (r *AnimalRepository) List(ctx context.Context, params ListAnimalsParams) ([]models.Animal, error) {
	conditions := []string{"farm_id = $1"}
	args := []interface{}{params.FarmID}

	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(tag_id ILIKE $%d OR name ILIKE $%d)", n, n))
	}

	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if params.Cursor != nil {
		args = append(args, params.Cursor.CreatedAt, params.Cursor.ID)
		conditions = append(conditions,
			fmt.Sprintf("(created_at, id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	args = append(args, params.Limit)
	query := fmt.Sprintf(`
		SELECT * FROM animals
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d`,
		strings.Join(conditions, " AND "), len(args))

	var animals []models.Animal
	if err := r.db.SelectContext(ctx, &animals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}

	return animals, nil
}

func (r *AnimalRepository) ListByFarm(ctx context.Context, farmID uuid.UUID) ([]models.Animal, error) {
	var animals []models.Animal
	query := `SELECT * FROM animals WHERE farm_id = $1 ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &animals, query, farmID); err != nil {
		return nil, fmt.Errorf("failed to list animals by farm: %w", err)
	}
	return animals, nil
}

// UpdateEditable updates only the mutable fields that are present on the
// request. tag_id, animal_type, gender, birth_date and status are immutable
// after creation and never appear in the SET clause.
func (r *AnimalRepository) UpdateEditable(ctx context.Context, id uuid.UUID, req *models.UpdateAnimalRequest) error {
	updateFields := []string{}
	args := map[string]interface{}{
		"id":         id,
		"updated_at": time.Now(),
	}

	if req.Name != nil {
		updateFields = append(updateFields, "name = :name")
		args["name"] = req.Name
	}
	if req.Color != nil {
		updateFields = append(updateFields, "color = :color")
		args["color"] = req.Color
	}
	if req.WeightKg != nil {
		updateFields = append(updateFields, "weight_kg = :weight_kg")
		args["weight_kg"] = req.WeightKg
	}
	if req.HeightCm != nil {
		updateFields = append(updateFields, "height_cm = :height_cm")
		args["height_cm"] = int(*req.HeightCm)
	}
	if req.MotherTag != nil {
		updateFields = append(updateFields, "mother_tag = :mother_tag")
		args["mother_tag"] = req.MotherTag
	}
	if req.FatherTag != nil {
		updateFields = append(updateFields, "father_tag = :father_tag")
		args["father_tag"] = req.FatherTag
	}
	if req.Genome != nil {
		updateFields = append(updateFields, "genome = :genome")
		args["genome"] = req.Genome
	}

	updateFields = append(updateFields, "updated_at = :updated_at")

	query := fmt.Sprintf(`UPDATE animals SET %s WHERE id = :id`, strings.Join(updateFields, ", "))

	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return fmt.Errorf("failed to update animal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *AnimalRepository) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	query := `UPDATE animals SET image_url = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, imageURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set animal image url: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
