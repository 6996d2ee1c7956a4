package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors surfaced by the services. Handlers translate these to
// HTTP statuses or page redirects; everything else is reported as a
// generic internal failure.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCode        = errors.New("invalid otp")
	ErrCodeExpired        = errors.New("otp expired")
	ErrNotFound           = errors.New("not found")
	ErrUnverified         = errors.New("email not verified")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError carries field-level messages, surfaced verbatim to the
// caller.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
