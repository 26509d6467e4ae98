// Package common defines shared sentinel errors used across service and
// transport layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors. Services wrap ErrorInvalidInput with field detail,
	// e.g. fmt.Errorf("%w: password must be 6-100 characters", ErrorInvalidInput).
	ErrorInvalidInput = errors.New("invalid input")

	// Account-specific errors. ErrorInvalidCredentials is deliberately the
	// same for an unknown email and a wrong password.
	ErrorDuplicateEmail     = errors.New("email already registered")
	ErrorInvalidCredentials = errors.New("incorrect email or password")
	ErrorUnauthenticated    = errors.New("not authenticated")

	// Auth errors (invalid, malformed, or expired token).
	ErrInvalidToken = errors.New("invalid token")
)
