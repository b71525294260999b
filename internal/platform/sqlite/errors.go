package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/flashcards/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MapError maps a SQLite error to an appropriate store error.
// It wraps the original error to preserve context.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return err
	}

	// The constraint kind is read from the message, which names the
	// violated column for unique constraints.
	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: flashcards.question"):
		return fmt.Errorf("%w: %v", store.ErrQuestionExists, err)
	case strings.Contains(msg, "UNIQUE constraint failed: users.name"):
		return fmt.Errorf("%w: %v", store.ErrUserNameExists, err)
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "PRIMARY KEY"):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: foreign key violation: %v", store.ErrInvalidEntity, err)
	case strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%w: check constraint violation: %v", store.ErrInvalidEntity, err)
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return fmt.Errorf("%w: not null violation: %v", store.ErrInvalidEntity, err)
	}

	return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
}
