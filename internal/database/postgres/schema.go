package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements is applied in order on startup. Everything is idempotent
// so restarts and multiple instances are safe.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS farms (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		owner_id VARCHAR(255) NOT NULL UNIQUE,
		farm_name VARCHAR(255) NOT NULL,
		province VARCHAR(255),
		farm_code VARCHAR(50),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS farm_members (
		farm_id UUID NOT NULL REFERENCES farms(id) ON DELETE CASCADE,
		user_id VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'MEMBER',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (farm_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS animals (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		farm_id UUID NOT NULL REFERENCES farms(id) ON DELETE CASCADE,
		tag_id VARCHAR(255) NOT NULL,
		name VARCHAR(255),
		animal_type VARCHAR(30) NOT NULL,
		gender VARCHAR(10) NOT NULL DEFAULT 'FEMALE',
		status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
		color VARCHAR(255),
		weight_kg DOUBLE PRECISION,
		height_cm INTEGER,
		birth_date DATE,
		mother_tag VARCHAR(255),
		father_tag VARCHAR(255),
		genome VARCHAR(255),
		image_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (farm_id, tag_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_animals_farm_created
		ON animals (farm_id, created_at DESC, id DESC)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		animal_id UUID NOT NULL REFERENCES animals(id) ON DELETE CASCADE,
		farm_id UUID NOT NULL REFERENCES farms(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		activity_date TIMESTAMPTZ NOT NULL,
		due_date TIMESTAMPTZ,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		status_reason TEXT,
		created_by VARCHAR(255) NOT NULL,
		completed_by VARCHAR(255),
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_farm_status
		ON activities (farm_id, status)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_animal
		ON activities (animal_id)`,

	`CREATE TABLE IF NOT EXISTS staff_users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(255) UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		display_name VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the tables and indexes the service needs.
func EnsureSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
