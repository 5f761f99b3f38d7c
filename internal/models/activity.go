package models

import (
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	FarmID       uuid.UUID      `json:"farm_id" db:"farm_id"`
	AnimalID     uuid.UUID      `json:"animal_id" db:"animal_id"`
	Title        string         `json:"title" db:"title"`
	Description  *string        `json:"description,omitempty" db:"description"`
	ActivityDate time.Time      `json:"activity_date" db:"activity_date"`
	DueDate      *time.Time     `json:"due_date,omitempty" db:"due_date"`
	Status       ActivityStatus `json:"status" db:"status"`
	StatusReason *string        `json:"status_reason,omitempty" db:"status_reason"`
	CreatedBy    string         `json:"created_by" db:"created_by"`
	CompletedBy  *string        `json:"completed_by,omitempty" db:"completed_by"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// EffectiveDueDate is the date an activity is judged against when deciding
// whether it is overdue: due_date when set, activity_date otherwise.
func (a *Activity) EffectiveDueDate() time.Time {
	if a.DueDate != nil {
		return *a.DueDate
	}
	return a.ActivityDate
}

// StatusCount is one row of the grouped activity-status aggregate.
type StatusCount struct {
	Status ActivityStatus `json:"status" db:"status"`
	Count  int            `json:"count" db:"count"`
}

// AnimalActivityCount is one row of the per-animal actionable-activity aggregate.
type AnimalActivityCount struct {
	AnimalID uuid.UUID `json:"animal_id" db:"animal_id"`
	Count    int       `json:"count" db:"count"`
}

// BadgeSummary is the farm-wide notification badge payload.
type BadgeSummary struct {
	BadgeCount int              `json:"badgeCount"`
	Breakdown  BadgeBreakdown   `json:"breakdown"`
	FarmCounts []FarmBadgeCount `json:"farmCounts"`
}

type BadgeBreakdown struct {
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
}

type FarmBadgeCount struct {
	FarmID  uuid.UUID `json:"farmId"`
	Pending int       `json:"pending"`
	Overdue int       `json:"overdue"`
}
