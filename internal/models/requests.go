package models

import "time"

// CreateAnimalRequest is the full animal schema accepted by POST /api/animals.
// Field names follow the mobile client payloads (camelCase).
type CreateAnimalRequest struct {
	FarmID    string     `json:"farmId"`
	TagID     string     `json:"tagId"`
	Name      *string    `json:"name,omitempty"`
	Type      string     `json:"type"`
	Gender    *string    `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Color     *string    `json:"color,omitempty"`
	WeightKg  *float64   `json:"weightKg,omitempty"`
	HeightCm  *float64   `json:"heightCm,omitempty"`
	MotherTag *string    `json:"motherTag,omitempty"`
	FatherTag *string    `json:"fatherTag,omitempty"`
	Genome    *string    `json:"genome,omitempty"`
	ImageURL  *string    `json:"imageUrl,omitempty"`
}

// UpdateAnimalRequest carries the editable subset for PUT /api/animals/:id.
// tagId, type, gender, birthDate and status are immutable after creation;
// unknown or immutable fields in the payload are dropped by JSON decoding,
// not rejected.
type UpdateAnimalRequest struct {
	Name      *string  `json:"name,omitempty"`
	Color     *string  `json:"color,omitempty"`
	WeightKg  *float64 `json:"weightKg,omitempty"`
	HeightCm  *float64 `json:"heightCm,omitempty"`
	MotherTag *string  `json:"motherTag,omitempty"`
	FatherTag *string  `json:"fatherTag,omitempty"`
	Genome    *string  `json:"genome,omitempty"`
}

type CreateActivityRequest struct {
	AnimalID     string     `json:"animalId"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	ActivityDate time.Time  `json:"activityDate"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

type UpdateActivityStatusRequest struct {
	Status       string  `json:"status"`
	StatusReason *string `json:"statusReason,omitempty"`
}

type CreateStaffRequest struct {
	Username    string  `json:"username"`
	Email       *string `json:"email,omitempty"`
	Password    string  `json:"password"`
	DisplayName *string `json:"displayName,omitempty"`
}

type StaffLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LineLoginRequest struct {
	AccessToken string `json:"accessToken"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateFarmRequest struct {
	FarmName string  `json:"farmName"`
	Province *string `json:"province,omitempty"`
}

// AnimalListResult is the payload of GET /api/animals.
type AnimalListResult struct {
	Animals                []AnimalWithNotifications `json:"animals"`
	NextCursor             *string                   `json:"nextCursor"`
	HasMore                bool                      `json:"hasMore"`
	PendingActivitiesCount int                       `json:"pendingActivitiesCount"`
}

// Pagination is the page/limit pagination block of GET /api/activities.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ActivityListResult struct {
	Activities []Activity `json:"activities"`
	Pagination Pagination `json:"pagination"`
}
