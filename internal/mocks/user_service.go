package mocks

import (
	"context"

	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/phrazzld/flashcards/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	CreateUserFn func(ctx context.Context, name string) (*domain.User, error)
	GetUserFn    func(ctx context.Context, userID int64) (*domain.User, error)

	// Default response values
	User *domain.User
	Err  error
}

var _ service.UserService = (*MockUserService)(nil)

// CreateUser implements service.UserService
func (m *MockUserService) CreateUser(ctx context.Context, name string) (*domain.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, name)
	}
	return m.User, m.Err
}

// GetUser implements service.UserService
func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return m.User, m.Err
}
