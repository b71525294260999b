package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/phrazzld/flashcards/internal/store"
)

// UserStore implements store.UserStore on SQLite.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a SQLite UserStore.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (name, created_at, updated_at)
		VALUES (?, ?, ?)
	`, user.Name, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return store.NewStoreError("user", "create", "failed to insert user", MapError(err))
	}

	user.ID, err = result.LastInsertId()
	if err != nil {
		return store.NewStoreError("user", "create", "failed to read generated ID", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user created", slog.Int64("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var (
		user             domain.User
		created, updated timestamp
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM users
		WHERE id = ?
	`, id).Scan(&user.ID, &user.Name, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, store.NewStoreError("user", "get", "failed to get user", MapError(err))
	}

	user.CreatedAt = created.Time
	user.UpdatedAt = updated.Time
	return &user, nil
}
