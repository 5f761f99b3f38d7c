package livestock

import "time"

// Activity mirrors the activity resource as the API serializes it.
type Activity struct {
	ID           string     `json:"id"`
	AnimalID     string     `json:"animal_id"`
	FarmID       string     `json:"farm_id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	ActivityDate time.Time  `json:"activity_date"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Status       string     `json:"status"`
	StatusReason *string    `json:"status_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateActivityRequest is the payload for recording a new activity against
// an animal. Field names follow the API's camelCase request convention.
type CreateActivityRequest struct {
	AnimalID     string     `json:"animalId"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	ActivityDate time.Time  `json:"activityDate"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type BadgeBreakdown struct {
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
}

type FarmBadgeCount struct {
	FarmID  string `json:"farmId"`
	Pending int    `json:"pending"`
	Overdue int    `json:"overdue"`
}

type BadgeSummary struct {
	BadgeCount int              `json:"badgeCount"`
	Breakdown  BadgeBreakdown   `json:"breakdown"`
	FarmCounts []FarmBadgeCount `json:"farmCounts"`
}

type activityPage struct {
	Activities []Activity `json:"activities"`
	Pagination Pagination `json:"pagination"`
}

type activityListEnvelope struct {
	Success bool         `json:"success"`
	Data    activityPage `json:"data"`
}

type activityEnvelope struct {
	Success bool     `json:"success"`
	Data    Activity `json:"data"`
}

type badgeEnvelope struct {
	Success bool         `json:"success"`
	Data    BadgeSummary `json:"data"`
}
