package domain

import "errors"

// Application errors shared across layers. Handlers map these onto HTTP
// status codes; everything unrecognized becomes a generic 500.
var (
	// ErrNotFound record not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate a record with the same unique key already exists
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidInput the caller supplied invalid data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal internal error
	ErrInternal = errors.New("internal error")
)
