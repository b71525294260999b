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

// AnswerStore implements store.AnswerStore on SQLite.
type AnswerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAnswerStore creates a SQLite AnswerStore.
func NewAnswerStore(db store.DBTX, logger *slog.Logger) *AnswerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AnswerStore{
		db:     db,
		logger: logger.With(slog.String("component", "answer_store")),
	}
}

var _ store.AnswerStore = (*AnswerStore)(nil)

// WithTx implements store.AnswerStore.WithTx
func (s *AnswerStore) WithTx(tx *sql.Tx) store.AnswerStore {
	return &AnswerStore{db: tx, logger: s.logger}
}

// Save implements store.AnswerStore.Save
func (s *AnswerStore) Save(ctx context.Context, answer *domain.Answer) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.Int64("user_id", answer.UserID),
		slog.Int64("flashcard_id", answer.FlashcardID),
	)

	if err := answer.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	// Correct answers are left untouched, in which case no row is returned.
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO user_answers (user_id, flashcard_id, answer, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, flashcard_id) DO UPDATE
		SET answer = excluded.answer,
		    state = excluded.state,
		    updated_at = excluded.updated_at
		WHERE user_answers.state <> 'correct'
		RETURNING id
	`,
		answer.UserID,
		answer.FlashcardID,
		answer.Text,
		string(answer.State),
		answer.CreatedAt,
		answer.UpdatedAt,
	).Scan(&answer.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("answer already correct, nothing written")
			return store.ErrAnswerLocked
		}
		log.Error("failed to save answer", slog.String("error", err.Error()))
		return store.NewStoreError("answer", "save", "failed to save answer", MapError(err))
	}

	log.Debug("answer saved", slog.String("state", answer.State.String()))
	return nil
}

// Find implements store.AnswerStore.Find
func (s *AnswerStore) Find(ctx context.Context, flashcardID, userID int64) (*domain.Answer, error) {
	var (
		answer           domain.Answer
		state            string
		created, updated timestamp
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, flashcard_id, answer, state, created_at, updated_at
		FROM user_answers
		WHERE flashcard_id = ? AND user_id = ?
	`, flashcardID, userID).Scan(
		&answer.ID,
		&answer.UserID,
		&answer.FlashcardID,
		&answer.Text,
		&state,
		&created,
		&updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, store.NewStoreError("answer", "find", "failed to find answer", MapError(err))
	}

	answer.State, err = domain.ParseAnswerState(state)
	if err != nil {
		return nil, store.NewStoreError("answer", "find", "stored answer has invalid state", err)
	}
	answer.CreatedAt = created.Time
	answer.UpdatedAt = updated.Time
	return &answer, nil
}

// PurgeAll implements store.AnswerStore.PurgeAll
func (s *AnswerStore) PurgeAll(ctx context.Context, userID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_answers WHERE user_id = ?`, userID)
	if err != nil {
		return 0, store.NewStoreError("answer", "purge", "failed to delete answers", MapError(err))
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("answer", "purge", "failed to get rows affected", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("answers purged",
		slog.Int64("user_id", userID),
		slog.Int64("removed", removed))
	return removed, nil
}
