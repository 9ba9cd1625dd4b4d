package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrNoSession is returned when a view or service is used without an
	// authenticated session value.
	ErrNoSession = errors.New("no active session")

	// ErrEliminationRequired marks a check-out that must go through the
	// elimination position picker instead of a direct call.
	ErrEliminationRequired = errors.New("elimination flow required")
)
