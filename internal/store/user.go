package store

import (
	"context"

	"github.com/phrazzld/flashcards/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and assigns its generated ID.
	// Returns ErrUserNameExists if the name is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns (nil, nil) if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
