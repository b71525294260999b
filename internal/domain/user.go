package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultUserID is the user seeded by the initial migration.
const DefaultUserID int64 = 1

// Common validation errors
var (
	ErrEmptyUserName   = fmt.Errorf("%w: user name cannot be empty", ErrValidation)
	ErrUserNameTooLong = fmt.Errorf("%w: user name must be at most 64 characters long", ErrValidation)
)

const maxUserNameLength = 64

// User identifies whose answers are being tracked. The trainer performs no
// authentication; a user is only a name with an ID.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates an unsaved User with the given name.
func NewUser(name string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyUserName
	}

	if len(u.Name) > maxUserNameLength {
		return ErrUserNameTooLong
	}

	if u.ID < 0 {
		return ErrInvalidUserID
	}

	return nil
}

// ValidateUserID checks that id can refer to a stored user.
func ValidateUserID(id int64) error {
	if id <= 0 {
		return ErrInvalidUserID
	}
	return nil
}
