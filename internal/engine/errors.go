package engine

import (
	"errors"
	"fmt"
	"strings"
)

// QueryError represents a rejected query or an empty lookup.
//
// Query errors include:
//   - Invalid spec: the FilterSpec violates its invariants
//   - Not found: no record has the requested id
type QueryError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// ID is the requested record id (for not-found errors).
	ID string

	// Problems lists every validation problem (for invalid-spec errors).
	Problems []string
}

// ErrorCode categorizes query errors.
type ErrorCode string

const (
	// ErrCodeInvalidSpec indicates a FilterSpec violates its invariants.
	ErrCodeInvalidSpec ErrorCode = "INVALID_SPEC"

	// ErrCodeNotFound indicates a point lookup matched no record.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Sentinels for errors.Is. Any QueryError with the same code matches.
var (
	ErrInvalidSpec = &QueryError{Code: ErrCodeInvalidSpec, Message: "invalid filter spec"}
	ErrNotFound    = &QueryError{Code: ErrCodeNotFound, Message: "record not found"}
)

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: %s (id=%s)", e.Code, e.Message, e.ID)
	}
	if len(e.Problems) > 0 {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, strings.Join(e.Problems, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a QueryError with the same code.
func (e *QueryError) Is(target error) bool {
	var qe *QueryError
	if !errors.As(target, &qe) {
		return false
	}
	return qe.Code == e.Code
}

// IsInvalidSpec returns true if the error is an invalid-spec error.
// Uses errors.Is to handle wrapped errors.
func IsInvalidSpec(err error) bool {
	return errors.Is(err, ErrInvalidSpec)
}

// IsNotFound returns true if the error is a not-found error.
// Uses errors.Is to handle wrapped errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// NewInvalidSpecError creates a QueryError for a malformed spec.
func NewInvalidSpecError(problems []string) *QueryError {
	return &QueryError{
		Code:     ErrCodeInvalidSpec,
		Message:  "invalid filter spec",
		Problems: problems,
	}
}

// NewNotFoundError creates a QueryError for a missing record.
func NewNotFoundError(id string) *QueryError {
	return &QueryError{
		Code:    ErrCodeNotFound,
		Message: "no record with this id",
		ID:      id,
	}
}
