package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery signals a search query that failed validation.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrSourceUnavailable signals that a candidate source could not be read.
	ErrSourceUnavailable = errors.New("search backend unavailable")
	// ErrUnknownEntityType signals an entity type outside {guru, gig}.
	ErrUnknownEntityType = errors.New("unknown entity type")
)

// ValidationError wraps ErrInvalidQuery with the offending parameter.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidQuery }

// NewValidationError creates a validation error for a query parameter.
func NewValidationError(param, reason string) error {
	return &ValidationError{Param: param, Reason: reason}
}

// SourceError wraps ErrSourceUnavailable with the entity type whose fetch failed.
type SourceError struct {
	EntityType string
	Err        error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("fetch %s candidates: %v", e.EntityType, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is.
func (e *SourceError) Unwrap() []error { return []error{ErrSourceUnavailable, e.Err} }
