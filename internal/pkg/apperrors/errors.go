package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Persistence errors
var (
	// ErrConstraintViolation marks a write rejected by a schema, uniqueness or referential constraint.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrSalaryOverflow marks a salary that no longer fits the persisted numeric column.
	ErrSalaryOverflow = errors.New("salary exceeds the storable precision")
	// ErrNoInstructors is returned by aggregates that are undefined over an empty instructor set.
	ErrNoInstructors = errors.New("no instructors")
)

// Entity kinds used in EntityNotFound errors
const (
	EntityInstructor     = "instructor"
	EntityCampus         = "campus"
	EntityResponsibility = "responsibility"
)

// NewEntityNotFoundError creates the error raised by operations that require an entity to exist
func NewEntityNotFoundError(entity string, id int64) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: fmt.Sprintf("%s %d not found", entity, id),
		Code:    "ENTITY_NOT_FOUND",
		Details: map[string]interface{}{"entity": entity, "id": id},
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError wraps ErrValidationFailed with a field specific message
func NewValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

// IsEntityNotFound reports whether err is an EntityNotFound error for the given kind.
// An empty kind matches any entity.
func IsEntityNotFound(err error, entity string) bool {
	var custom *CustomError
	if !errors.As(err, &custom) || !errors.Is(custom.Err, ErrResourceNotFound) {
		return false
	}
	if entity == "" {
		return true
	}
	kind, _ := custom.Details["entity"].(string)
	return kind == entity
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
