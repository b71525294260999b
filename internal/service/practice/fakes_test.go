package practice_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/phrazzld/flashcards/internal/store"
)

// memoryStore is an in-memory implementation of the flashcard and answer
// stores that records writes and can be told to fail.
type memoryStore struct {
	mu         sync.Mutex
	flashcards map[int64]*domain.Flashcard
	answers    map[[2]int64]*domain.Answer
	nextID     int64

	answerWrites int
	failWith     error
	// lockOnSave makes the next answer save behave as if another writer
	// stored a correct answer first.
	lockOnSave bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		flashcards: map[int64]*domain.Flashcard{},
		answers:    map[[2]int64]*domain.Answer{},
	}
}

type memoryFlashcards struct{ *memoryStore }

type memoryAnswers struct{ *memoryStore }

var (
	_ store.FlashcardStore = memoryFlashcards{}
	_ store.AnswerStore    = memoryAnswers{}
)

func (m memoryFlashcards) List(context.Context) ([]*domain.Flashcard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.sorted(), nil
}

func (m *memoryStore) sorted() []*domain.Flashcard {
	cards := make([]*domain.Flashcard, 0, len(m.flashcards))
	for _, card := range m.flashcards {
		copied := *card
		cards = append(cards, &copied)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards
}

func (m memoryFlashcards) GetByID(_ context.Context, id int64) (*domain.Flashcard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	card, ok := m.flashcards[id]
	if !ok {
		return nil, nil
	}
	copied := *card
	return &copied, nil
}

func (m memoryFlashcards) QuestionExists(_ context.Context, question string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	for _, card := range m.flashcards {
		if card.Question == question {
			return true, nil
		}
	}
	return false, nil
}

func (m memoryFlashcards) Save(_ context.Context, card *domain.Flashcard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	return m.saveLocked(card)
}

func (m *memoryStore) saveLocked(card *domain.Flashcard) error {
	for _, existing := range m.flashcards {
		if existing.Question == card.Question && existing.ID != card.ID {
			return store.ErrQuestionExists
		}
	}
	if card.IsNew() {
		m.nextID++
		card.ID = m.nextID
	}
	copied := *card
	m.flashcards[card.ID] = &copied
	return nil
}

func (m memoryFlashcards) SaveAll(_ context.Context, cards []*domain.Flashcard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for _, card := range cards {
		if err := m.saveLocked(card); err != nil {
			return err
		}
	}
	return nil
}

func (m memoryFlashcards) ListWithUserAnswers(_ context.Context, userID int64) ([]domain.AnsweredFlashcard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	items := []domain.AnsweredFlashcard{}
	for _, card := range m.sorted() {
		item := domain.AnsweredFlashcard{Flashcard: *card}
		if answer, ok := m.answers[[2]int64{userID, card.ID}]; ok {
			copied := *answer
			item.Answer = &copied
		}
		items = append(items, item)
	}
	return items, nil
}

func (m memoryFlashcards) CountAnswers(context.Context) (domain.AnswerCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return domain.AnswerCounts{}, m.failWith
	}
	answered := map[int64]bool{}
	correct := map[int64]bool{}
	for key, answer := range m.answers {
		answered[key[1]] = true
		if answer.IsCorrect() {
			correct[key[1]] = true
		}
	}
	return domain.AnswerCounts{
		TotalQuestions: len(m.flashcards),
		TotalAnswers:   len(answered),
		CorrectAnswers: len(correct),
	}, nil
}

func (m memoryFlashcards) WithTx(*sql.Tx) store.FlashcardStore { return m }

func (m memoryAnswers) Save(_ context.Context, answer *domain.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	key := [2]int64{answer.UserID, answer.FlashcardID}
	if m.lockOnSave {
		m.lockOnSave = false
		locked := *answer
		locked.State = domain.AnswerStateCorrect
		m.answers[key] = &locked
		return store.ErrAnswerLocked
	}
	if existing, ok := m.answers[key]; ok && existing.IsCorrect() {
		return store.ErrAnswerLocked
	}
	m.answerWrites++
	copied := *answer
	m.answers[key] = &copied
	return nil
}

func (m memoryAnswers) Find(_ context.Context, flashcardID, userID int64) (*domain.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	answer, ok := m.answers[[2]int64{userID, flashcardID}]
	if !ok {
		return nil, nil
	}
	copied := *answer
	return &copied, nil
}

func (m memoryAnswers) PurgeAll(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	var removed int64
	for key := range m.answers {
		if key[0] == userID {
			delete(m.answers, key)
			removed++
		}
	}
	return removed, nil
}

func (m memoryAnswers) WithTx(*sql.Tx) store.AnswerStore { return m }
