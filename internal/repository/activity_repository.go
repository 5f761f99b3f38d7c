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

// actionableStatuses is the single definition of "pending-like" used by every
// aggregate: the per-animal list counts and the farm-wide badge must always
// agree on it.
var actionableStatuses = []string{
	string(models.ActivityPending),
	string(models.ActivityOverdue),
}

type ListActivitiesParams struct {
	FarmID   uuid.UUID
	AnimalID *uuid.UUID
	Status   string
	Limit    int
	Offset   int
}

// FarmStatusCount is one row of the per-farm badge aggregate.
type FarmStatusCount struct {
	FarmID uuid.UUID             `db:"farm_id"`
	Status models.ActivityStatus `db:"status"`
	Count  int                   `db:"count"`
}

type IActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Activity, error)
	List(ctx context.Context, params ListActivitiesParams) ([]models.Activity, int, error)
	UpdateStatus(ctx context.Context, activity *models.Activity) error
	CountActionableByAnimal(ctx context.Context, farmID uuid.UUID) (map[uuid.UUID]int, error)
	CountActionableByFarm(ctx context.Context, farmIDs []uuid.UUID) ([]FarmStatusCount, error)
	MarkOverdue(ctx context.Context, now time.Time) ([]models.Activity, error)
}

type ActivityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) IActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	activity.CreatedAt = time.Now()
	activity.UpdatedAt = activity.CreatedAt
	if activity.Status == "" {
		activity.Status = models.ActivityPending
	}

	query := `
		INSERT INTO activities (
			id, farm_id, animal_id, title, description, activity_date, due_date,
			status, status_reason, created_by, completed_by, completed_at,
			created_at, updated_at
		) VALUES (
			:id, :farm_id, :animal_id, :title, :description, :activity_date, :due_date,
			:status, :status_reason, :created_by, :completed_by, :completed_at,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, activity)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrInvalidReference
		}
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.GetContext(ctx, &activity, `SELECT * FROM activities WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &activity, nil
}

// List returns one offset page plus the total matching count, ordered by
// activity_date DESC with id as tie-breaker.
func (r *ActivityRepository) List(ctx context.Context, params ListActivitiesParams) ([]models.Activity, int, error) {
	conditions := []string{"farm_id = $1"}
	args := []interface{}{params.FarmID}

	if params.AnimalID != nil {
		args = append(args, *params.AnimalID)
		conditions = append(conditions, fmt.Sprintf("animal_id = $%d", len(args)))
	}
	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM activities WHERE %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT * FROM activities
		WHERE %s
		ORDER BY activity_date DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	var activities []models.Activity
	if err := r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, total, nil
}

func (r *ActivityRepository) UpdateStatus(ctx context.Context, activity *models.Activity) error {
	activity.UpdatedAt = time.Now()

	query := `
		UPDATE activities SET
			status = :status, status_reason = :status_reason,
			completed_by = :completed_by, completed_at = :completed_at,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, activity)
	if err != nil {
		return fmt.Errorf("failed to update activity status: %w", err)
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

// CountActionableByAnimal is the per-animal notification aggregate: one
// grouped query for the whole farm, never one query per animal.
func (r *ActivityRepository) CountActionableByAnimal(ctx context.Context, farmID uuid.UUID) (map[uuid.UUID]int, error) {
	query := `
		SELECT animal_id, COUNT(*) AS count
		FROM activities
		WHERE farm_id = $1 AND status = ANY($2)
		GROUP BY animal_id`

	var rows []models.AnimalActivityCount
	if err := r.db.SelectContext(ctx, &rows, query, farmID, pq.Array(actionableStatuses)); err != nil {
		return nil, fmt.Errorf("failed to count actionable activities: %w", err)
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.AnimalID] = row.Count
	}

	return counts, nil
}

// CountActionableByFarm is the badge aggregate: status counts within
// {PENDING, OVERDUE} grouped by farm and status.
func (r *ActivityRepository) CountActionableByFarm(ctx context.Context, farmIDs []uuid.UUID) ([]FarmStatusCount, error) {
	if len(farmIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(farmIDs))
	for i, id := range farmIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT farm_id, status, COUNT(*) AS count
		FROM activities
		WHERE farm_id = ANY($1) AND status = ANY($2)
		GROUP BY farm_id, status`

	var rows []FarmStatusCount
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids), pq.Array(actionableStatuses)); err != nil {
		return nil, fmt.Errorf("failed to count actionable activities by farm: %w", err)
	}

	return rows, nil
}

// MarkOverdue flips PENDING activities whose effective due date (due_date,
// falling back to activity_date) has passed, and returns the newly overdue
// rows so callers can notify farm owners.
func (r *ActivityRepository) MarkOverdue(ctx context.Context, now time.Time) ([]models.Activity, error) {
	query := `
		UPDATE activities
		SET status = $1, updated_at = $2
		WHERE status = $3 AND COALESCE(due_date, activity_date) < $2
		RETURNING *`

	var overdue []models.Activity
	err := r.db.SelectContext(ctx, &overdue, query,
		models.ActivityOverdue, now, models.ActivityPending)
	if err != nil {
		return nil, fmt.Errorf("failed to mark overdue activities: %w", err)
	}

	return overdue, nil
}
