// internal/services/errors.go
package services

import "errors"

// Sentinel errors shared by all services. Handlers map these onto HTTP
// statuses with errors.Is.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrForbidden             = errors.New("operation not permitted")
	ErrValidation            = errors.New("validation failed")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrDependencyUnavailable = errors.New("upstream dependency unavailable")
)
