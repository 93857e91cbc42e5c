package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks caller input that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthenticated is returned by operations that need a signed-in user.
	ErrUnauthenticated = errors.New("not authenticated")
)
