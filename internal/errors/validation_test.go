package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("duration_seconds", "must be a finite, non-negative number", -3.5)

	if err.Field != "duration_seconds" {
		t.Errorf("Expected field to be 'duration_seconds', got '%s'", err.Field)
	}

	if err.Value != -3.5 {
		t.Errorf("Expected value to be -3.5, got '%v'", err.Value)
	}

	expected := "validation error on field 'duration_seconds': must be a finite, non-negative number"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("score", "must be at least 0", nil))
	expected := "validation failed: score must be at least 0"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("error_count", "must be at least 0", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("analysis_mode", "must be Cumulative or LatestOnly", "analysis_mode", "Weekly")

	if err.Rule != "analysis_mode" {
		t.Errorf("Expected rule to be 'analysis_mode', got '%s'", err.Rule)
	}

	if err.Field != "analysis_mode" {
		t.Errorf("Expected field to be 'analysis_mode', got '%s'", err.Field)
	}
}
