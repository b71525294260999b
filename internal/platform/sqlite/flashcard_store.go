package sqlite

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

// FlashcardStore implements store.FlashcardStore on SQLite.
type FlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewFlashcardStore creates a SQLite FlashcardStore. If logger is nil, the
// default logger is used.
func NewFlashcardStore(db store.DBTX, logger *slog.Logger) *FlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

var _ store.FlashcardStore = (*FlashcardStore)(nil)

// WithTx implements store.FlashcardStore.WithTx
func (s *FlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &FlashcardStore{db: tx, logger: s.logger}
}

// List implements store.FlashcardStore.List
func (s *FlashcardStore) List(ctx context.Context) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, created_at, updated_at
		FROM flashcards
		ORDER BY id
	`)
	if err != nil {
		log.Error("failed to query flashcards", slog.String("error", err.Error()))
		return nil, store.NewStoreError("flashcard", "list", "failed to query flashcards", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	flashcards := []*domain.Flashcard{}
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, store.NewStoreError("flashcard", "list", "failed to scan flashcard", err)
		}
		flashcards = append(flashcards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("flashcard", "list", "failed to read flashcards", err)
	}

	log.Debug("listed flashcards", slog.Int("count", len(flashcards)))
	return flashcards, nil
}

// GetByID implements store.FlashcardStore.GetByID
func (s *FlashcardStore) GetByID(ctx context.Context, id int64) (*domain.Flashcard, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, question, answer, created_at, updated_at
		FROM flashcards
		WHERE id = ?
	`, id)

	card, err := scanFlashcard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get flashcard by ID",
			slog.String("error", err.Error()),
			slog.Int64("flashcard_id", id))
		return nil, store.NewStoreError("flashcard", "get", "failed to get flashcard", MapError(err))
	}
	return card, nil
}

// QuestionExists implements store.FlashcardStore.QuestionExists
func (s *FlashcardStore) QuestionExists(ctx context.Context, question string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM flashcards WHERE question = ?)`,
		question,
	).Scan(&exists)
	if err != nil {
		return false, store.NewStoreError("flashcard", "exists", "failed to check question", MapError(err))
	}
	return exists, nil
}

// Save implements store.FlashcardStore.Save
func (s *FlashcardStore) Save(ctx context.Context, card *domain.Flashcard) error {
	if card.IsNew() {
		return s.insert(ctx, s.db, card)
	}
	return s.update(ctx, card)
}

// SaveAll implements store.FlashcardStore.SaveAll
func (s *FlashcardStore) SaveAll(ctx context.Context, cards []*domain.Flashcard) error {
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

	logger.FromContextOrDefault(ctx, s.logger).Info("flashcards saved", slog.Int("count", len(cards)))
	return nil
}

func (s *FlashcardStore) insert(ctx context.Context, db store.DBTX, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO flashcards (question, answer, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, card.Question, card.Answer, card.CreatedAt, card.UpdatedAt)
	if err != nil {
		mapped := MapError(err)
		if !errors.Is(mapped, store.ErrQuestionExists) {
			log.Error("failed to insert flashcard", slog.String("error", err.Error()))
		}
		return store.NewStoreError("flashcard", "save", "failed to insert flashcard", mapped)
	}

	card.ID, err = result.LastInsertId()
	if err != nil {
		return store.NewStoreError("flashcard", "save", "failed to read generated ID", err)
	}

	log.Debug("flashcard created", slog.Int64("flashcard_id", card.ID))
	return nil
}

func (s *FlashcardStore) update(ctx context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	card.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE flashcards
		SET question = ?, answer = ?, updated_at = ?
		WHERE id = ?
	`, card.Question, card.Answer, card.UpdatedAt, card.ID)
	if err != nil {
		return store.NewStoreError("flashcard", "save", "failed to update flashcard", MapError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("flashcard", "save", "failed to get rows affected", err)
	}
	if affected == 0 {
		return store.ErrFlashcardNotFound
	}
	return nil
}

// ListWithUserAnswers implements store.FlashcardStore.ListWithUserAnswers
func (s *FlashcardStore) ListWithUserAnswers(
	ctx context.Context,
	userID int64,
) ([]domain.AnsweredFlashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.question, f.answer, f.created_at, f.updated_at,
		       a.id, a.answer, a.state, a.created_at, a.updated_at
		FROM flashcards f
		LEFT JOIN user_answers a ON a.flashcard_id = f.id AND a.user_id = ?
		ORDER BY f.id
	`, userID)
	if err != nil {
		log.Error("failed to query flashcards with answers", slog.String("error", err.Error()))
		return nil, store.NewStoreError("flashcard", "list_with_answers", "failed to query flashcards", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	items := []domain.AnsweredFlashcard{}
	for rows.Next() {
		var (
			item                         domain.AnsweredFlashcard
			created, updated             timestamp
			answerID                     sql.NullInt64
			text, state                  sql.NullString
			answerCreated, answerUpdated timestamp
		)
		err := rows.Scan(
			&item.Flashcard.ID, &item.Flashcard.Question, &item.Flashcard.Answer, &created, &updated,
			&answerID, &text, &state, &answerCreated, &answerUpdated,
		)
		if err != nil {
			return nil, store.NewStoreError("flashcard", "list_with_answers", "failed to scan row", err)
		}
		item.Flashcard.CreatedAt = created.Time
		item.Flashcard.UpdatedAt = updated.Time

		if answerID.Valid {
			answerState, err := domain.ParseAnswerState(state.String)
			if err != nil {
				return nil, store.NewStoreError("flashcard", "list_with_answers", "stored answer has invalid state", err)
			}
			item.Answer = &domain.Answer{
				ID:          answerID.Int64,
				UserID:      userID,
				FlashcardID: item.Flashcard.ID,
				Text:        text.String,
				State:       answerState,
				CreatedAt:   answerCreated.Time,
				UpdatedAt:   answerUpdated.Time,
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("flashcard", "list_with_answers", "failed to read rows", err)
	}

	return items, nil
}

// CountAnswers implements store.FlashcardStore.CountAnswers
func (s *FlashcardStore) CountAnswers(ctx context.Context) (domain.AnswerCounts, error) {
	var counts domain.AnswerCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN EXISTS (
				SELECT 1 FROM user_answers a WHERE a.flashcard_id = f.id
			) THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN EXISTS (
				SELECT 1 FROM user_answers a WHERE a.flashcard_id = f.id AND a.state = 'correct'
			) THEN 1 ELSE 0 END), 0)
		FROM flashcards f
	`).Scan(&counts.TotalQuestions, &counts.TotalAnswers, &counts.CorrectAnswers)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to aggregate statistics",
			slog.String("error", err.Error()))
		return domain.AnswerCounts{}, store.NewStoreError("flashcard", "count_answers", "failed to aggregate", MapError(err))
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlashcard(row rowScanner) (*domain.Flashcard, error) {
	var (
		card             domain.Flashcard
		created, updated timestamp
	)
	if err := row.Scan(&card.ID, &card.Question, &card.Answer, &created, &updated); err != nil {
		return nil, err
	}
	card.CreatedAt = created.Time
	card.UpdatedAt = updated.Time
	return &card, nil
}
