package services

import (
	"errors"
	"fmt"

	apperrors "github.com/pathwise-labs/insights-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
	ErrBadRequest    = errors.New("bad request")

	// Subject / topic errors
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrSubjectHasNoTopics = errors.New("subject has no topics")
	ErrTopicNotFound      = errors.New("topic not found")

	// History errors
	ErrRecordNotFound = errors.New("weak lesson record not found")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// GenerationFailedError wraps a failure of the external content
// generation capability. No record is persisted when this is returned.
type GenerationFailedError struct {
	Err error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("remedial content generation failed: %v", e.Err)
}

func (e *GenerationFailedError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed write that happened after generation
// succeeded. The generated content is lost from the caller's
// perspective; there is no in-memory fallback.
type PersistenceError struct {
	Operation string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Operation, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewGenerationFailedError(err error) *GenerationFailedError {
	return &GenerationFailedError{Err: err}
}

func NewPersistenceError(operation string, err error) *PersistenceError {
	return &PersistenceError{Operation: operation, Err: err}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrSubjectHasNoTopics) ||
		errors.Is(err, ErrTopicNotFound) ||
		errors.Is(err, ErrRecordNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

// IsGenerationFailure checks if error came from the content generation step
func IsGenerationFailure(err error) bool {
	var gfe *GenerationFailedError
	return errors.As(err, &gfe)
}

// IsPersistenceFailure checks if error came from a post-generation write
func IsPersistenceFailure(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
