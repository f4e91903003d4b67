package store

import "github.com/pkg/errors"

// Sentinel errors mapped to HTTP status classes by the controllers.
var (
	ErrNotFound        = errors.New("record not found")
	ErrForbidden       = errors.New("not the owner of this enrollment")
	ErrConflict        = errors.New("conflicting record already exists")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("operation not allowed in current state")
	ErrVersionConflict = errors.New("enrollment was modified concurrently")
)
