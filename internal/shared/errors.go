// Package shared defines sentinel errors and small utilities used across
// client and relay layers of MinuteKeeper. Callers should use errors.Is to
// match these values.
package shared

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors surfaced synchronously before any persistence.
	ErrValidation = errors.New("validation error")

	// Import / snapshot errors.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// Relay errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnknownKind  = errors.New("unknown entity kind")
)
