// Package common defines shared constants and sentinel errors used across
// the taskboard server layers. Callers should use errors.Is to match these
// values; the REST boundary maps them to transport status codes.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidToken       = errors.New("invalid token")

	// Authorization errors (authenticated but not permitted).
	ErrForbidden = errors.New("forbidden")

	// Input errors.
	ErrValidation = errors.New("validation error")

	// Reserved for concurrent-edit detection; updates are currently
	// last-write-wins and nothing returns this yet.
	ErrConflict = errors.New("conflict")

	// Service-level catch-all.
	ErrInternal = errors.New("internal error")
)
