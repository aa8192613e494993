// Package common defines the sentinel errors shared between the server
// services, the storage backends and the CLI client. Callers match them
// with errors.Is.
package common

import "errors"

var (
	// ErrNotFound is returned when a record does not exist for the caller,
	// including tasks that belong to a different owner.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned by signup when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned on any failed login. It never reveals
	// whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is returned when a required field is missing or empty
	// after trimming, or a field has a value outside its allowed set.
	ErrValidation = errors.New("validation error")

	// ErrUnavailable is returned when the transport or storage layer is
	// unreachable or produced a malformed response.
	ErrUnavailable = errors.New("service unavailable")
)
