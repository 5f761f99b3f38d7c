package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"livestock-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type IFarmRepository interface {
	Create(ctx context.Context, farm *models.Farm) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Farm, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*models.Farm, error)
	GetMembers(ctx context.Context, farmID uuid.UUID) ([]models.FarmMember, error)
}

type FarmRepository struct {
	db *sqlx.DB
}

func NewFarmRepository(db *sqlx.DB) IFarmRepository {
	return &FarmRepository{db: db}
}

// Create inserts the farm and its OWNER membership row in one transaction.
func (r *FarmRepository) Create(ctx context.Context, farm *models.Farm) error {
	if farm.ID == uuid.Nil {
		farm.ID = uuid.New()
	}
	farm.CreatedAt = time.Now()
	farm.UpdatedAt = farm.CreatedAt

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO farms (id, owner_id, farm_name, province, farm_code, created_at, updated_at)
		VALUES (:id, :owner_id, :farm_name, :province, :farm_code, :created_at, :updated_at)`

	if _, err := tx.NamedExecContext(ctx, query, farm); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateFarm
		}
		return fmt.Errorf("failed to create farm: %w", err)
	}

	memberQuery := `
		INSERT INTO farm_members (farm_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := tx.ExecContext(ctx, memberQuery,
		farm.ID, farm.OwnerID, models.FarmRoleOwner, farm.CreatedAt); err != nil {
		return fmt.Errorf("failed to create owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit farm creation: %w", err)
	}

	return nil
}

func (r *FarmRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Farm, error) {
	var farm models.Farm
	err := r.db.GetContext(ctx, &farm, `SELECT * FROM farms WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}
	return &farm, nil
}

func (r *FarmRepository) GetByOwnerID(ctx context.Context, ownerID string) (*models.Farm, error) {
	var farm models.Farm
	err := r.db.GetContext(ctx, &farm, `SELECT * FROM farms WHERE owner_id = $1`, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get farm by owner: %w", err)
	}
	return &farm, nil
}

func (r *FarmRepository) GetMembers(ctx context.Context, farmID uuid.UUID) ([]models.FarmMember, error) {
	var members []models.FarmMember
	query := `SELECT * FROM farm_members WHERE farm_id = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &members, query, farmID); err != nil {
		return nil, fmt.Errorf("failed to get farm members: %w", err)
	}
	return members, nil
}
