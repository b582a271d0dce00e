// Package apperr defines the application error taxonomy.
//
// Services and repositories return these errors; pkg/response maps them to
// HTTP status codes in one place, so handlers never hand-pick codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation covers malformed or missing required input.
	ErrValidation = errors.New("validation failed")

	// ErrTenantRequired is returned when an operation needs a resolved
	// tenant and none could be derived from the request.
	ErrTenantRequired = errors.New("no tenant resolved")

	// ErrTenantMismatch is returned when an authenticated user acts under
	// a tenant that is not their own. Mapped to 403 with a uniform body so
	// nothing about the other tenant's data leaks.
	ErrTenantMismatch = errors.New("tenant mismatch")

	// ErrCrossTenantProduct is returned by the order workflow when a line
	// item references a product owned by a different tenant.
	ErrCrossTenantProduct = errors.New("product does not belong to tenant")

	// ErrInvalidCredential covers bad logins and expired or tampered tokens.
	ErrInvalidCredential = errors.New("invalid credentials")

	// ErrForbidden is returned when an authenticated user fails a role or
	// ownership check.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound covers records that are absent or outside the caller's
	// visible scope. The two cases are indistinguishable to the caller.
	ErrNotFound = errors.New("not found")
)

// Validation wraps ErrValidation with a field-level message map.
type Validation struct {
	Fields map[string]string
}

func (e *Validation) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func (e *Validation) Unwrap() error { return ErrValidation }

// NewValidation builds a Validation error from field messages.
func NewValidation(fields map[string]string) error {
	return &Validation{Fields: fields}
}

// ValidationField is shorthand for a single-field validation error.
func ValidationField(field, msg string) error {
	return &Validation{Fields: map[string]string{field: msg}}
}
