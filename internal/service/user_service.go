package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/phrazzld/flashcards/internal/store"
)

// UserService provides user-related operations.
type UserService interface {
	// CreateUser registers a new user with a unique name.
	CreateUser(ctx context.Context, name string) (*domain.User, error)

	// GetUser retrieves a user by ID. Returns ErrUserNotFound if there is none.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, logger *slog.Logger) UserService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// CreateUser creates a new user with the specified name
func (s *UserServiceImpl) CreateUser(ctx context.Context, name string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name)
	if err != nil {
		log.Debug("invalid user", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserNameExists) {
			log.Debug("attempted to create user with existing name", slog.String("name", user.Name))
			return nil, fmt.Errorf("%w: %q", ErrUserNameTaken, user.Name)
		}
		log.Error("failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}
