package services

import "errors"

// Service-level sentinel errors. Handlers translate these to HTTP statuses
// and stable envelope codes; the message shown to the user is decided at the
// boundary, never here.
var (
	ErrForbidden          = errors.New("caller does not own this resource")
	ErrAnimalNotFound     = errors.New("animal not found")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrFarmNotFound       = errors.New("farm not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCursor      = errors.New("invalid pagination cursor")
	ErrInvalidTransition  = errors.New("invalid activity status transition")
)
