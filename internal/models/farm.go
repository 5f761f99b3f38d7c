package models

import (
	"time"

	"github.com/google/uuid"
)

type Farm struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	FarmName  string    `json:"farm_name" db:"farm_name"`
	Province  *string   `json:"province,omitempty" db:"province"`
	FarmCode  *string   `json:"farm_code,omitempty" db:"farm_code"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type FarmMember struct {
	FarmID    uuid.UUID `json:"farm_id" db:"farm_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Role      FarmRole  `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
