package domain

import "errors"

var (
	// ErrAuthRequired is returned when an operation needs a signed-in user.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidScore rejects focus scores outside [1,100] or non-numeric input.
	ErrInvalidScore = errors.New("score must be a whole number between 1 and 100")
)

const (
	MinFocusScore = 1
	MaxFocusScore = 100
)
