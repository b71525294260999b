package postgres

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

// PostgresAnswerStore implements the store.AnswerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAnswerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAnswerStore creates a new PostgreSQL implementation of the AnswerStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAnswerStore(db store.DBTX, logger *slog.Logger) *PostgresAnswerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAnswerStore{
		db:     db,
		logger: logger.With(slog.String("component", "answer_store")),
	}
}

// Ensure PostgresAnswerStore implements store.AnswerStore interface
var _ store.AnswerStore = (*PostgresAnswerStore)(nil)

// WithTx implements store.AnswerStore.WithTx
func (s *PostgresAnswerStore) WithTx(tx *sql.Tx) store.AnswerStore {
	return &PostgresAnswerStore{
		db:     tx,
		logger: s.logger,
	}
}

// saveAnswerQuery inserts an answer or overwrites the existing one for the
// same user and flashcard. The WHERE clause leaves correct answers untouched,
// in which case no row is returned.
const saveAnswerQuery = `
	INSERT INTO user_answers (user_id, flashcard_id, answer, state, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id, flashcard_id) DO UPDATE
	SET answer = EXCLUDED.answer,
	    state = EXCLUDED.state,
	    updated_at = EXCLUDED.updated_at
	WHERE user_answers.state <> 'correct'
	RETURNING id, created_at, updated_at
`

// Save implements store.AnswerStore.Save
func (s *PostgresAnswerStore) Save(ctx context.Context, answer *domain.Answer) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.Int64("user_id", answer.UserID),
		slog.Int64("flashcard_id", answer.FlashcardID),
	)

	if err := answer.Validate(); err != nil {
		log.Warn("answer validation failed during save", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	err := s.db.QueryRowContext(ctx, saveAnswerQuery,
		answer.UserID,
		answer.FlashcardID,
		answer.Text,
		string(answer.State),
		answer.CreatedAt,
		answer.UpdatedAt,
	).Scan(&answer.ID, &answer.CreatedAt, &answer.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("answer already correct, nothing written")
			return store.ErrAnswerLocked
		}
		log.Error("failed to save answer", slog.String("error", err.Error()))
		return store.NewStoreError("answer", "save", "failed to save answer", MapError(err))
	}

	log.Debug("answer saved",
		slog.Int64("answer_id", answer.ID),
		slog.String("state", answer.State.String()))
	return nil
}

// Find implements store.AnswerStore.Find
func (s *PostgresAnswerStore) Find(ctx context.Context, flashcardID, userID int64) (*domain.Answer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, flashcard_id, answer, state, created_at, updated_at
		FROM user_answers
		WHERE flashcard_id = $1 AND user_id = $2
	`

	var (
		answer domain.Answer
		state  string
	)
	err := s.db.QueryRowContext(ctx, query, flashcardID, userID).Scan(
		&answer.ID,
		&answer.UserID,
		&answer.FlashcardID,
		&answer.Text,
		&state,
		&answer.CreatedAt,
		&answer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error("failed to find answer",
			slog.String("error", err.Error()),
			slog.Int64("flashcard_id", flashcardID),
			slog.Int64("user_id", userID))
		return nil, store.NewStoreError("answer", "find", "failed to find answer", MapError(err))
	}

	answer.State, err = domain.ParseAnswerState(state)
	if err != nil {
		return nil, store.NewStoreError("answer", "find", "stored answer has invalid state", err)
	}

	return &answer, nil
}

// PurgeAll implements store.AnswerStore.PurgeAll
func (s *PostgresAnswerStore) PurgeAll(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM user_answers WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to purge answers",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return 0, store.NewStoreError("answer", "purge", "failed to delete answers", MapError(err))
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("answer", "purge", "failed to get rows affected", err)
	}

	log.Info("answers purged",
		slog.Int64("user_id", userID),
		slog.Int64("removed", removed))
	return removed, nil
}
