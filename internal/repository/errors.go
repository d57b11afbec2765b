package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert collides with a unique constraint.
var ErrConflict = errors.New("already exists")
