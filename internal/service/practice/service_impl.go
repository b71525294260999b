package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/phrazzld/flashcards/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	flashcards store.FlashcardStore
	answers    store.AnswerStore
	clock      func() time.Time
	logger     *slog.Logger
}

// Option configures the service.
type Option func(*serviceImpl)

// WithClock sets the time source used to stamp answers.
func WithClock(clock func() time.Time) Option {
	return func(s *serviceImpl) {
		s.clock = clock
	}
}

// NewService creates a new practice Service.
func NewService(
	flashcards store.FlashcardStore,
	answers store.AnswerStore,
	logger *slog.Logger,
	opts ...Option,
) Service {
	if flashcards == nil {
		panic("flashcards store cannot be nil")
	}
	if answers == nil {
		panic("answers store cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &serviceImpl{
		flashcards: flashcards,
		answers:    answers,
		clock:      func() time.Time { return time.Now().UTC() },
		logger:     logger.With(slog.String("component", "practice_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateFlashcard implements Service.CreateFlashcard.
func (s *serviceImpl) CreateFlashcard(ctx context.Context, question, answer string) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewFlashcard(question, answer)
	if err != nil {
		log.Debug("invalid flashcard", slog.String("error", err.Error()))
		return nil, err
	}

	exists, err := s.flashcards.QuestionExists(ctx, question)
	if err != nil {
		log.Error("failed to check question", slog.String("error", err.Error()))
		return nil, newPersistenceError("create_flashcard", "failed to check question", err)
	}
	if exists {
		log.Debug("duplicate flashcard question")
		return nil, &DuplicateQuestionError{Question: question}
	}

	if err := s.flashcards.Save(ctx, card); err != nil {
		log.Error("failed to save flashcard", slog.String("error", err.Error()))
		return nil, newPersistenceError("create_flashcard", "failed to save flashcard", err)
	}

	log.Info("flashcard created", slog.Int64("flashcard_id", card.ID))
	return card, nil
}

// ListFlashcards implements Service.ListFlashcards.
func (s *serviceImpl) ListFlashcards(ctx context.Context) ([]*domain.Flashcard, error) {
	cards, err := s.flashcards.List(ctx)
	if err != nil {
		return nil, newPersistenceError("list_flashcards", "failed to list flashcards", err)
	}
	return cards, nil
}

// GetFlashcard implements Service.GetFlashcard.
func (s *serviceImpl) GetFlashcard(ctx context.Context, id int64) (*domain.Flashcard, error) {
	if id <= 0 {
		return nil, ErrFlashcardNotFound
	}

	card, err := s.flashcards.GetByID(ctx, id)
	if err != nil {
		return nil, newPersistenceError("get_flashcard", "failed to get flashcard", err)
	}
	if card == nil {
		return nil, ErrFlashcardNotFound
	}
	return card, nil
}

// GetPracticeStatus implements Service.GetPracticeStatus.
func (s *serviceImpl) GetPracticeStatus(ctx context.Context, userID int64) (*domain.PracticeStatus, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	items, err := s.flashcards.ListWithUserAnswers(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load practice status",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, newPersistenceError("get_practice_status", "failed to load flashcards", err)
	}

	return domain.NewPracticeStatus(items), nil
}

// AcceptAnswer implements Service.AcceptAnswer.
func (s *serviceImpl) AcceptAnswer(
	ctx context.Context,
	flashcard *domain.Flashcard,
	userID int64,
	submitted string,
) (domain.AnswerState, error) {
	if flashcard == nil || flashcard.IsNew() {
		return "", fmt.Errorf("%w: flashcard must be stored before it is answered", domain.ErrInvalidID)
	}
	if err := domain.ValidateUserID(userID); err != nil {
		return "", err
	}

	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.Int64("user_id", userID),
		slog.Int64("flashcard_id", flashcard.ID),
	)

	answer, err := s.answers.Find(ctx, flashcard.ID, userID)
	if err != nil {
		log.Error("failed to find answer", slog.String("error", err.Error()))
		return "", newPersistenceError("accept_answer", "failed to find answer", err)
	}

	now := s.clock()
	switch {
	case answer == nil:
		answer, err = domain.NewAnswer(flashcard, userID, submitted, now)
		if err != nil {
			return "", err
		}
	case answer.IsCorrect():
		log.Debug("answer already correct")
		return "", ErrAlreadyCorrect
	default:
		answer.Resubmit(flashcard, submitted, now)
	}

	if err := s.answers.Save(ctx, answer); err != nil {
		if errors.Is(err, store.ErrAnswerLocked) {
			log.Debug("answer became correct concurrently")
			return "", ErrAlreadyCorrect
		}
		log.Error("failed to save answer", slog.String("error", err.Error()))
		return "", newPersistenceError("accept_answer", "failed to save answer", err)
	}

	log.Info("answer accepted", slog.String("state", answer.State.String()))
	return answer.State, nil
}

// ResetProgress implements Service.ResetProgress.
func (s *serviceImpl) ResetProgress(ctx context.Context, userID int64) error {
	if err := domain.ValidateUserID(userID); err != nil {
		return err
	}

	removed, err := s.answers.PurgeAll(ctx, userID)
	if err != nil {
		return newPersistenceError("reset_progress", "failed to delete answers", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("progress reset",
		slog.Int64("user_id", userID),
		slog.Int64("removed_answers", removed))
	return nil
}

// GetStatistics implements Service.GetStatistics.
func (s *serviceImpl) GetStatistics(ctx context.Context) (*domain.Statistic, error) {
	counts, err := s.flashcards.CountAnswers(ctx)
	if err != nil {
		return nil, newPersistenceError("get_statistics", "failed to aggregate answers", err)
	}
	return domain.NewStatistic(counts), nil
}

// ImportFlashcards implements Service.ImportFlashcards.
func (s *serviceImpl) ImportFlashcards(ctx context.Context, inputs []FlashcardInput) (*ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards := make([]*domain.Flashcard, 0, len(inputs))
	for i, input := range inputs {
		card, err := domain.NewFlashcard(input.Question, input.Answer)
		if err != nil {
			return nil, fmt.Errorf("flashcard %d: %w", i+1, err)
		}
		cards = append(cards, card)
	}

	result := &ImportResult{Created: []*domain.Flashcard{}, Skipped: []string{}}
	seen := make(map[string]struct{}, len(cards))
	for _, card := range cards {
		if _, ok := seen[card.Question]; ok {
			result.Skipped = append(result.Skipped, card.Question)
			continue
		}
		seen[card.Question] = struct{}{}

		exists, err := s.flashcards.QuestionExists(ctx, card.Question)
		if err != nil {
			return nil, newPersistenceError("import_flashcards", "failed to check question", err)
		}
		if exists {
			result.Skipped = append(result.Skipped, card.Question)
			continue
		}
		result.Created = append(result.Created, card)
	}

	if len(result.Created) > 0 {
		if err := s.flashcards.SaveAll(ctx, result.Created); err != nil {
			log.Error("failed to import flashcards", slog.String("error", err.Error()))
			return nil, newPersistenceError("import_flashcards", "failed to save flashcards", err)
		}
	}

	log.Info("flashcards imported",
		slog.Int("created", len(result.Created)),
		slog.Int("skipped", len(result.Skipped)))
	return result, nil
}
