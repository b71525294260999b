package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/flashcards/internal/domain"
)

// AnswerStore defines the interface for user answer persistence.
// There is at most one answer per (user, flashcard) pair.
type AnswerStore interface {
	// Save inserts the answer or, if the user already answered the flashcard,
	// overwrites the stored text and state. The conflict on (user, flashcard)
	// is resolved by the database, never by application locking.
	//
	// A stored correct answer is terminal: if the existing row is already
	// correct, nothing is written and ErrAnswerLocked is returned.
	// Returns ErrInvalidEntity if the user or flashcard does not exist.
	Save(ctx context.Context, answer *domain.Answer) error

	// Find returns the answer of a user to a flashcard.
	// Returns (nil, nil) if the user has not answered it.
	Find(ctx context.Context, flashcardID, userID int64) (*domain.Answer, error)

	// PurgeAll deletes every answer of the user and reports how many were
	// removed. Purging a user without answers is not an error.
	PurgeAll(ctx context.Context, userID int64) (int64, error)

	// WithTx returns a new AnswerStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AnswerStore
}
