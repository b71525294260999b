package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/phrazzld/flashcards/internal/service/practice"
)

// MockPracticeService implements practice.Service for testing. Each method
// calls its Fn field when set; otherwise it returns the zero value and Err.
type MockPracticeService struct {
	CreateFlashcardFn   func(ctx context.Context, question, answer string) (*domain.Flashcard, error)
	ListFlashcardsFn    func(ctx context.Context) ([]*domain.Flashcard, error)
	GetFlashcardFn      func(ctx context.Context, id int64) (*domain.Flashcard, error)
	GetPracticeStatusFn func(ctx context.Context, userID int64) (*domain.PracticeStatus, error)
	AcceptAnswerFn      func(ctx context.Context, flashcard *domain.Flashcard, userID int64, submitted string) (domain.AnswerState, error)
	ResetProgressFn     func(ctx context.Context, userID int64) error
	GetStatisticsFn     func(ctx context.Context) (*domain.Statistic, error)
	ImportFlashcardsFn  func(ctx context.Context, inputs []practice.FlashcardInput) (*practice.ImportResult, error)

	// Err is returned by methods without an Fn
	Err error

	mu    sync.Mutex
	calls map[string]int
}

var _ practice.Service = (*MockPracticeService)(nil)

func (m *MockPracticeService) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[method]++
}

// Calls returns how often method was called.
func (m *MockPracticeService) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// CreateFlashcard implements practice.Service
func (m *MockPracticeService) CreateFlashcard(ctx context.Context, question, answer string) (*domain.Flashcard, error) {
	m.record("CreateFlashcard")
	if m.CreateFlashcardFn != nil {
		return m.CreateFlashcardFn(ctx, question, answer)
	}
	return nil, m.Err
}

// ListFlashcards implements practice.Service
func (m *MockPracticeService) ListFlashcards(ctx context.Context) ([]*domain.Flashcard, error) {
	m.record("ListFlashcards")
	if m.ListFlashcardsFn != nil {
		return m.ListFlashcardsFn(ctx)
	}
	return nil, m.Err
}

// GetFlashcard implements practice.Service
func (m *MockPracticeService) GetFlashcard(ctx context.Context, id int64) (*domain.Flashcard, error) {
	m.record("GetFlashcard")
	if m.GetFlashcardFn != nil {
		return m.GetFlashcardFn(ctx, id)
	}
	return nil, m.Err
}

// GetPracticeStatus implements practice.Service
func (m *MockPracticeService) GetPracticeStatus(ctx context.Context, userID int64) (*domain.PracticeStatus, error) {
	m.record("GetPracticeStatus")
	if m.GetPracticeStatusFn != nil {
		return m.GetPracticeStatusFn(ctx, userID)
	}
	return nil, m.Err
}

// AcceptAnswer implements practice.Service
func (m *MockPracticeService) AcceptAnswer(
	ctx context.Context,
	flashcard *domain.Flashcard,
	userID int64,
	submitted string,
) (domain.AnswerState, error) {
	m.record("AcceptAnswer")
	if m.AcceptAnswerFn != nil {
		return m.AcceptAnswerFn(ctx, flashcard, userID, submitted)
	}
	return "", m.Err
}

// ResetProgress implements practice.Service
func (m *MockPracticeService) ResetProgress(ctx context.Context, userID int64) error {
	m.record("ResetProgress")
	if m.ResetProgressFn != nil {
		return m.ResetProgressFn(ctx, userID)
	}
	return m.Err
}

// GetStatistics implements practice.Service
func (m *MockPracticeService) GetStatistics(ctx context.Context) (*domain.Statistic, error) {
	m.record("GetStatistics")
	if m.GetStatisticsFn != nil {
		return m.GetStatisticsFn(ctx)
	}
	return nil, m.Err
}

// ImportFlashcards implements practice.Service
func (m *MockPracticeService) ImportFlashcards(
	ctx context.Context,
	inputs []practice.FlashcardInput,
) (*practice.ImportResult, error) {
	m.record("ImportFlashcards")
	if m.ImportFlashcardsFn != nil {
		return m.ImportFlashcardsFn(ctx, inputs)
	}
	return nil, m.Err
}
