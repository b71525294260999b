package domain_test

import (
	"testing"

	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answered(id int64, question string, state domain.AnswerState) domain.AnsweredFlashcard {
	item := domain.AnsweredFlashcard{
		Flashcard: domain.Flashcard{ID: id, Question: question, Answer: "a"},
	}
	if state != domain.AnswerStateUnanswered {
		item.Answer = &domain.Answer{ID: id, UserID: 1, FlashcardID: id, State: state}
	}
	return item
}

func TestNewPracticeStatus(t *testing.T) {
	status := domain.NewPracticeStatus([]domain.AnsweredFlashcard{
		answered(1, "q1", domain.AnswerStateCorrect),
		answered(2, "q2", domain.AnswerStateIncorrect),
		answered(3, "q3", domain.AnswerStateUnanswered),
		answered(4, "q4", domain.AnswerStateCorrect),
		answered(5, "q5", domain.AnswerStateUnanswered),
	})

	require.Len(t, status.Entries, 5)
	assert.Equal(t, "q1", status.Entries[0].Question())
	assert.Equal(t, domain.AnswerStateUnanswered, status.Entries[2].State)
	assert.Equal(t, 2, status.CorrectCount())
	assert.Equal(t, 40, status.CompletionProgress())

	pending := status.Pending()
	require.Len(t, pending, 3)
	assert.Equal(t, []string{"q2", "q3", "q5"}, []string{
		pending[0].Question(), pending[1].Question(), pending[2].Question(),
	})

	entry, ok := status.FindByQuestion("q4")
	require.True(t, ok)
	assert.Equal(t, int64(4), entry.Flashcard.ID)
	assert.False(t, entry.IsPending())

	_, ok = status.FindByQuestion("Q4")
	assert.False(t, ok)
}

func TestPracticeStatusEmpty(t *testing.T) {
	status := domain.NewPracticeStatus(nil)

	assert.Empty(t, status.Entries)
	assert.Equal(t, 0, status.CompletionProgress())
	assert.Empty(t, status.Pending())
}
