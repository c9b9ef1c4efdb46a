package models

import "errors"

// Typed errors mapped to HTTP status codes by the delivery layer.
var (
	// Input did not satisfy the record constraints.
	ErrValidation = errors.New("validation failed")
	// The backend has no record with the requested id.
	ErrNotFound = errors.New("record not found")

	// Backend failures.
	ErrRejected    = errors.New("backend rejected the request")
	ErrUnavailable = errors.New("backend unavailable")
)
