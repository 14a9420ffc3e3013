package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrEmptyDataset   = errors.New("dataset is empty")
	ErrColumnNotFound = errors.New("column not found")
	ErrSessionGone    = errors.New("session not found")

	// Validation errors
	ErrInvalidFilter      = errors.New("invalid filter configuration")
	ErrInvalidAggregation = errors.New("invalid aggregation configuration")
	ErrDisallowedQuery    = errors.New("only SELECT queries are allowed")

	// Undo errors
	ErrNothingToUndo = errors.New("no pending mutation to undo")
)

// NewColumnNotFoundError adds the offending column name
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, column)
}

// IsValidationError reports whether err is one of the configuration errors
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidFilter) ||
		errors.Is(err, ErrInvalidAggregation) ||
		errors.Is(err, ErrDisallowedQuery)
}
