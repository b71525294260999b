// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Every more specific validation error below wraps it.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is zero or negative.
	ErrInvalidID = fmt.Errorf("%w: invalid ID", ErrValidation)

	// ErrInvalidUserID is returned when a user identifier is zero or negative.
	ErrInvalidUserID = fmt.Errorf("%w: user ID must be positive", ErrValidation)

	// ErrInvalidAnswerState is returned when an answer state is not one of
	// the persistable values.
	ErrInvalidAnswerState = fmt.Errorf("%w: invalid answer state", ErrValidation)
)
