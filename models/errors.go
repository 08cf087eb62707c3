package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a record cannot be resolved by id or slug.
var ErrNotFound = errors.New("record not found")

// ErrAlreadySubscribed is returned when subscribing an email that is already active.
var ErrAlreadySubscribed = errors.New("email is already subscribed")

// ValidationError reports a field-level validation failure, including
// uniqueness conflicts. It names the conflicting field so callers can surface
// field-level detail.
type ValidationError struct {
	Field     string
	Message   string
	Duplicate bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewDuplicateError builds a ValidationError for a uniqueness conflict
func NewDuplicateError(field string) *ValidationError {
	return &ValidationError{
		Field:     field,
		Message:   fmt.Sprintf("a record with this %s already exists", field),
		Duplicate: true,
	}
}

// IsDuplicateErr reports whether a database error is a uniqueness violation.
// Works with both PostgreSQL and SQLite error strings.
func IsDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
