package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Resource and business errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrCompanyNameTaken   = errors.New("company name already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Token verification errors. Verify never returns more than one kind:
// an expired token always surfaces as ErrTokenExpired.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenIssuerMismatch   = errors.New("token issuer or audience mismatch")
)

// Principal resolution errors.
var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidToken      = errors.New("invalid token")
	ErrPrincipalNotFound = errors.New("principal not found")
)

// ValidationError carries all field-level failures of one request.
// Failures are collected, not short-circuited.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a failure for a field, keeping the first message per field.
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
