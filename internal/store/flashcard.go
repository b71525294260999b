package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/flashcards/internal/domain"
)

// FlashcardStore defines the interface for flashcard data persistence.
type FlashcardStore interface {
	// List returns all flashcards in ascending ID order.
	// Returns an empty slice when there are none.
	List(ctx context.Context) ([]*domain.Flashcard, error)

	// GetByID retrieves a flashcard by its ID.
	// Returns (nil, nil) if the flashcard does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Flashcard, error)

	// QuestionExists reports whether a flashcard with exactly this question
	// text is stored. The comparison is case-sensitive.
	QuestionExists(ctx context.Context, question string) (bool, error)

	// Save persists a flashcard. A flashcard without an ID is inserted and
	// receives its generated ID; otherwise the stored row is updated.
	// Returns ErrQuestionExists if the question is already used by another
	// flashcard, and ErrFlashcardNotFound when updating a missing row.
	Save(ctx context.Context, flashcard *domain.Flashcard) error

	// SaveAll inserts new flashcards atomically: either every flashcard is
	// stored or none is.
	SaveAll(ctx context.Context, flashcards []*domain.Flashcard) error

	// ListWithUserAnswers returns every flashcard in ascending ID order, each
	// annotated with the answer of the given user if one exists. Answers of
	// other users are never included.
	ListWithUserAnswers(ctx context.Context, userID int64) ([]domain.AnsweredFlashcard, error)

	// CountAnswers computes the global aggregate counts. A flashcard counts once
	// towards TotalAnswers if any user answered it and once towards
	// CorrectAnswers if any user answered it correctly.
	CountAnswers(ctx context.Context) (domain.AnswerCounts, error)

	// WithTx returns a new FlashcardStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) FlashcardStore
}
