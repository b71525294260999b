// Package practice implements the flashcard practice workflow: creating
// flashcards, tracking each user's answers, and reporting progress and
// global statistics.
package practice

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/flashcards/internal/domain"
)

// FlashcardInput is one question/answer pair to import.
type FlashcardInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ImportResult reports the outcome of ImportFlashcards.
type ImportResult struct {
	// Created holds the stored flashcards in input order.
	Created []*domain.Flashcard
	// Skipped holds questions that already existed or repeated an earlier input.
	Skipped []string
}

// Service provides the practice operations shared by the interactive
// terminal session and the HTTP API.
type Service interface {
	// CreateFlashcard stores a new flashcard.
	//
	// The question must not exist yet. Existence is checked before the write,
	// so a known duplicate never reaches the store.
	//
	// Returns:
	//   - (*domain.Flashcard, nil): the stored flashcard with its ID
	//   - (nil, *DuplicateQuestionError): the question is already used
	//   - (nil, domain.ErrValidation): blank question or answer
	//   - (nil, *PersistenceError): the store failed
	CreateFlashcard(ctx context.Context, question, answer string) (*domain.Flashcard, error)

	// ListFlashcards returns every flashcard in ascending ID order.
	ListFlashcards(ctx context.Context) ([]*domain.Flashcard, error)

	// GetFlashcard returns the flashcard with the given ID or ErrFlashcardNotFound.
	GetFlashcard(ctx context.Context, id int64) (*domain.Flashcard, error)

	// GetPracticeStatus returns every flashcard with the user's answer state.
	GetPracticeStatus(ctx context.Context, userID int64) (*domain.PracticeStatus, error)

	// AcceptAnswer evaluates a submitted answer and stores it.
	//
	// A correct answer is terminal: if the user already answered the flashcard
	// correctly, ErrAlreadyCorrect is returned and nothing is written.
	// Otherwise exactly one answer is written and its new state returned. The
	// comparison with the stored answer is exact and case-sensitive.
	AcceptAnswer(
		ctx context.Context,
		flashcard *domain.Flashcard,
		userID int64,
		submitted string,
	) (domain.AnswerState, error)

	// ResetProgress deletes every answer of the user. Other users are not affected.
	ResetProgress(ctx context.Context, userID int64) error

	// GetStatistics returns the global statistics over all users.
	GetStatistics(ctx context.Context) (*domain.Statistic, error)

	// ImportFlashcards stores many flashcards at once. Inputs whose question
	// already exists, or repeats an earlier input, are skipped. The remaining
	// flashcards are stored atomically. A blank question or answer fails the
	// import before anything is written.
	ImportFlashcards(ctx context.Context, inputs []FlashcardInput) (*ImportResult, error)
}

// Common error types for the practice Service
var (
	// ErrDuplicateQuestion matches every *DuplicateQuestionError.
	ErrDuplicateQuestion = errors.New("question already exists")

	// ErrAlreadyCorrect indicates that the user already answered the flashcard correctly.
	ErrAlreadyCorrect = errors.New("question is already answered correctly")

	// ErrFlashcardNotFound indicates that the flashcard does not exist.
	ErrFlashcardNotFound = errors.New("flashcard not found")
)

// DuplicateQuestionError is returned when creating a flashcard whose question
// is already used.
type DuplicateQuestionError struct {
	Question string
}

// Error implements the error interface.
func (e *DuplicateQuestionError) Error() string {
	return fmt.Sprintf("flashcard with question %q already exists", e.Question)
}

// Is makes errors.Is(err, ErrDuplicateQuestion) hold.
func (e *DuplicateQuestionError) Is(target error) bool {
	return target == ErrDuplicateQuestion
}

// PersistenceError wraps a storage failure with the operation that caused it.
// It aborts the current operation only.
type PersistenceError struct {
	// Operation is the operation that failed (e.g., "create_flashcard", "accept_answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying store error
	Err error
}

// Error implements the error interface for PersistenceError.
func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func newPersistenceError(operation, message string, err error) *PersistenceError {
	return &PersistenceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
