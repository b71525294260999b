package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// API layer maps ErrUserNotFound to HTTP 404 and ErrUserNameTaken to HTTP 409.
var (
	// ErrUserNotFound indicates that no user has the requested ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserNameTaken indicates that another user already has the requested name.
	ErrUserNameTaken = errors.New("user name already taken")
)
