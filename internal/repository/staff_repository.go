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

type IStaffRepository interface {
	Create(ctx context.Context, staff *models.StaffUser) error
	GetByUsername(ctx context.Context, username string) (*models.StaffUser, error)
	GetByUsernameOrEmail(ctx context.Context, login string) (*models.StaffUser, error)
}

type StaffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) IStaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, staff *models.StaffUser) error {
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = staff.CreatedAt

	query := `
		INSERT INTO staff_users (id, username, email, password_hash, display_name, created_at, updated_at)
		VALUES (:id, :username, :email, :password_hash, :display_name, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, staff)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create staff user: %w", err)
	}

	return nil
}

func (r *StaffRepository) GetByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	var staff models.StaffUser
	err := r.db.GetContext(ctx, &staff, `SELECT * FROM staff_users WHERE username = $1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}
	return &staff, nil
}

func (r *StaffRepository) GetByUsernameOrEmail(ctx context.Context, login string) (*models.StaffUser, error) {
	var staff models.StaffUser
	query := `SELECT * FROM staff_users WHERE username = $1 OR email = $1`
	err := r.db.GetContext(ctx, &staff, query, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}
	return &staff, nil
}
