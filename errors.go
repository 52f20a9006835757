package docserver

import "errors"

var (
	// ErrNotFound is returned when the requested document does not exist
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a path resolves outside the public root
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized is returned when Basic credentials are missing or wrong
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTooLarge is returned when a request body exceeds the upload limit
	ErrTooLarge = errors.New("request body too large")
)
