package models

import (
	"time"

	"github.com/google/uuid"
)

type Animal struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	FarmID    uuid.UUID    `json:"farm_id" db:"farm_id"`
	TagID     string       `json:"tag_id" db:"tag_id"`
	Name      *string      `json:"name,omitempty" db:"name"`
	Type      AnimalType   `json:"type" db:"animal_type"`
	Gender    Gender       `json:"gender" db:"gender"`
	Status    AnimalStatus `json:"status" db:"status"`
	BirthDate *time.Time   `json:"birth_date,omitempty" db:"birth_date"`
	Color     *string      `json:"color,omitempty" db:"color"`
	WeightKg  *float64     `json:"weight_kg,omitempty" db:"weight_kg"`
	HeightCm  *int         `json:"height_cm,omitempty" db:"height_cm"`
	MotherTag *string      `json:"mother_tag,omitempty" db:"mother_tag"`
	FatherTag *string      `json:"father_tag,omitempty" db:"father_tag"`
	Genome    *string      `json:"genome,omitempty" db:"genome"`
	ImageURL  *string      `json:"image_url,omitempty" db:"image_url"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}

// AnimalWithNotifications is a list-view projection carrying the count of
// actionable (pending or overdue) activities for the animal.
type AnimalWithNotifications struct {
	Animal
	NotificationCount int `json:"notificationCount"`
}
