package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/phrazzld/flashcards/internal/store"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the FlashcardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// WithTx implements store.FlashcardStore.WithTx
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}

// List implements store.FlashcardStore.List
func (s *PostgresFlashcardStore) List(ctx context.Context) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, question, answer, created_at, updated_at
		FROM flashcards
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query flashcards", slog.String("error", err.Error()))
		return nil, store.NewStoreError("flashcard", "list", "failed to query flashcards", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	flashcards := []*domain.Flashcard{}
	for rows.Next() {
		var card domain.Flashcard
		if err := rows.Scan(&card.ID, &card.Question, &card.Answer, &card.CreatedAt, &card.UpdatedAt); err != nil {
			log.Error("failed to scan flashcard row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("flashcard", "list", "failed to scan flashcard", err)
		}
		flashcards = append(flashcards, &card)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("flashcard", "list", "failed to read flashcards", err)
	}

	log.Debug("listed flashcards", slog.Int("count", len(flashcards)))
	return flashcards, nil
}

// GetByID implements store.FlashcardStore.GetByID
func (s *PostgresFlashcardStore) GetByID(ctx context.Context, id int64) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, question, answer, created_at, updated_at
		FROM flashcards
		WHERE id = $1
	`

	var card domain.Flashcard
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.Question,
		&card.Answer,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard not found", slog.Int64("flashcard_id", id))
			return nil, nil
		}
		log.Error("failed to get flashcard by ID",
			slog.String("error", err.Error()),
			slog.Int64("flashcard_id", id))
		return nil, store.NewStoreError("flashcard", "get", "failed to get flashcard", MapError(err))
	}

	return &card, nil
}

// QuestionExists implements store.FlashcardStore.QuestionExists
func (s *PostgresFlashcardStore) QuestionExists(ctx context.Context, question string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM flashcards WHERE question = $1)`,
		question,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check question existence", slog.String("error", err.Error()))
		return false, store.NewStoreError("flashcard", "exists", "failed to check question", MapError(err))
	}

	return exists, nil
}

// Save implements store.FlashcardStore.Save
func (s *PostgresFlashcardStore) Save(ctx context.Context, card *domain.Flashcard) error {
	if card.IsNew() {
		return s.insert(ctx, s.db, card)
	}
	return s.update(ctx, card)
}

// SaveAll implements store.FlashcardStore.SaveAll
func (s *PostgresFlashcardStore) SaveAll(ctx context.Context, cards []*domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, card := range cards {
		if !card.IsNew() {
			return store.NewStoreError("flashcard", "save_all", "flashcard already persisted",
				fmt.Errorf("%w: flashcard %d", store.ErrInvalidEntity, card.ID))
		}
	}

	err := store.RunInTransactionDBTX(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, card := range cards {
			if err := s.insert(ctx, tx, card); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, card := range cards {
			card.ID = 0
		}
		return err
	}

	log.Info("flashcards saved", slog.Int("count", len(cards)))
	return nil
}

func (s *PostgresFlashcardStore) insert(ctx context.Context, db store.DBTX, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during insert", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO flashcards (question, answer, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := db.QueryRowContext(ctx, query,
		card.Question,
		card.Answer,
		card.CreatedAt,
		card.UpdatedAt,
	).Scan(&card.ID)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrQuestionExists) {
			log.Warn("duplicate flashcard question on insert")
		} else {
			log.Error("failed to insert flashcard", slog.String("error", err.Error()))
		}
		return store.NewStoreError("flashcard", "save", "failed to insert flashcard", mapped)
	}

	log.Debug("flashcard created", slog.Int64("flashcard_id", card.ID))
	return nil
}

func (s *PostgresFlashcardStore) update(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("flashcard_id", card.ID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	card.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE flashcards
		SET question = $1, answer = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, card.Question, card.Answer, card.UpdatedAt, card.ID)
	if err != nil {
		log.Error("failed to update flashcard",
			slog.String("error", err.Error()),
			slog.Int64("flashcard_id", card.ID))
		return store.NewStoreError("flashcard", "save", "failed to update flashcard", MapError(err))
	}

	if err := CheckRowsAffected(result, "flashcard"); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrFlashcardNotFound
		}
		return store.NewStoreError("flashcard", "save", "failed to update flashcard", err)
	}

	log.Debug("flashcard updated", slog.Int64("flashcard_id", card.ID))
	return nil
}

// ListWithUserAnswers implements store.FlashcardStore.ListWithUserAnswers
func (s *PostgresFlashcardStore) ListWithUserAnswers(
	ctx context.Context,
	userID int64,
) ([]domain.AnsweredFlashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT f.id, f.question, f.answer, f.created_at, f.updated_at,
		       a.id, a.answer, a.state, a.created_at, a.updated_at
		FROM flashcards f
		LEFT JOIN user_answers a ON a.flashcard_id = f.id AND a.user_id = $1
		ORDER BY f.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query flashcards with answers",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, store.NewStoreError("flashcard", "list_with_answers", "failed to query flashcards", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	items := []domain.AnsweredFlashcard{}
	for rows.Next() {
		item, err := scanAnsweredFlashcard(rows, userID)
		if err != nil {
			log.Error("failed to scan flashcard with answer", slog.String("error", err.Error()))
			return nil, store.NewStoreError("flashcard", "list_with_answers", "failed to scan row", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("flashcard", "list_with_answers", "failed to read rows", err)
	}

	log.Debug("listed flashcards with answers",
		slog.Int64("user_id", userID),
		slog.Int("count", len(items)))
	return items, nil
}

// CountAnswers implements store.FlashcardStore.CountAnswers
func (s *PostgresFlashcardStore) CountAnswers(ctx context.Context) (domain.AnswerCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var counts domain.AnswerCounts
	err := s.db.QueryRowContext(ctx, countAnswersQuery).Scan(
		&counts.TotalQuestions,
		&counts.TotalAnswers,
		&counts.CorrectAnswers,
	)
	if err != nil {
		log.Error("failed to aggregate statistics", slog.String("error", err.Error()))
		return domain.AnswerCounts{}, store.NewStoreError("flashcard", "count_answers", "failed to aggregate", MapError(err))
	}

	return counts, nil
}

// countAnswersQuery counts each flashcard at most once per column, however
// many users answered it.
const countAnswersQuery = `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE EXISTS (
			SELECT 1 FROM user_answers a WHERE a.flashcard_id = f.id
		)),
		COUNT(*) FILTER (WHERE EXISTS (
			SELECT 1 FROM user_answers a WHERE a.flashcard_id = f.id AND a.state = 'correct'
		))
	FROM flashcards f
`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnsweredFlashcard(row rowScanner, userID int64) (domain.AnsweredFlashcard, error) {
	var (
		item      domain.AnsweredFlashcard
		answerID  sql.NullInt64
		text      sql.NullString
		state     sql.NullString
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&item.Flashcard.ID,
		&item.Flashcard.Question,
		&item.Flashcard.Answer,
		&item.Flashcard.CreatedAt,
		&item.Flashcard.UpdatedAt,
		&answerID,
		&text,
		&state,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.AnsweredFlashcard{}, err
	}

	if !answerID.Valid {
		return item, nil
	}

	answerState, err := domain.ParseAnswerState(state.String)
	if err != nil {
		return domain.AnsweredFlashcard{}, err
	}

	item.Answer = &domain.Answer{
		ID:          answerID.Int64,
		UserID:      userID,
		FlashcardID: item.Flashcard.ID,
		Text:        text.String,
		State:       answerState,
		CreatedAt:   createdAt.Time,
		UpdatedAt:   updatedAt.Time,
	}
	return item, nil
}
