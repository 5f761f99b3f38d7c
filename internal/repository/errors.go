package repository

import "errors"

// Sentinel errors surfaced by repositories. Constraint violations are mapped
// from the store's own error codes after the fact; repositories never
// pre-check uniqueness before inserting.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateTag      = errors.New("tag id already exists in farm")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateFarm     = errors.New("owner already has a farm")
	ErrInvalidReference  = errors.New("referenced record does not exist")
)
