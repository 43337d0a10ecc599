// Package service provides application-level services for users and tasks.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to HTTP
// status codes.
var (
	// ErrInvalidCredentials is returned when a login fails, whether the email
	// is unknown or the password is wrong. One error for both keeps account
	// enumeration uninformative.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmptyUpdate is returned when an update carries no fields to change.
	// API layer should map this to HTTP 400 Bad Request.
	ErrEmptyUpdate = errors.New("no fields provided for update")
)
