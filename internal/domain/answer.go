package domain

import (
	"fmt"
	"time"
)

// AnswerState is the correctness state of a user's answer to a flashcard.
type AnswerState string

// Possible answer states. AnswerStateUnanswered is derived from the absence of
// an answer and is never persisted.
const (
	AnswerStateUnanswered AnswerState = "unanswered"
	AnswerStateCorrect    AnswerState = "correct"
	AnswerStateIncorrect  AnswerState = "incorrect"
)

// String returns the string value of the state.
func (s AnswerState) String() string {
	return string(s)
}

// IsPersistable reports whether the state may be stored.
func (s AnswerState) IsPersistable() bool {
	return s == AnswerStateCorrect || s == AnswerStateIncorrect
}

// ParseAnswerState converts a stored value into an AnswerState.
func ParseAnswerState(value string) (AnswerState, error) {
	state := AnswerState(value)
	if !state.IsPersistable() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAnswerState, value)
	}
	return state, nil
}

// Answer is one user's latest submission for one flashcard.
// There is at most one Answer per (UserID, FlashcardID) pair.
type Answer struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	FlashcardID int64       `json:"flashcard_id"`
	Text        string      `json:"answer"`
	State       AnswerState `json:"state"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewAnswer creates an unsaved answer of userID to the flashcard and evaluates
// the submitted text against the flashcard's stored answer.
func NewAnswer(card *Flashcard, userID int64, submitted string, now time.Time) (*Answer, error) {
	answer := &Answer{
		UserID:      userID,
		FlashcardID: card.ID,
		CreatedAt:   now,
	}
	answer.Resubmit(card, submitted, now)

	if err := answer.Validate(); err != nil {
		return nil, err
	}

	return answer, nil
}

// Resubmit overwrites the text and state of the answer with a new submission.
func (a *Answer) Resubmit(card *Flashcard, submitted string, now time.Time) {
	a.Text = submitted
	a.State = card.Check(submitted)
	a.UpdatedAt = now
}

// IsCorrect reports whether the answer is in the terminal correct state.
func (a *Answer) IsCorrect() bool {
	return a.State == AnswerStateCorrect
}

// Validate checks if the Answer has valid data.
func (a *Answer) Validate() error {
	if a.UserID <= 0 {
		return ErrInvalidUserID
	}

	if a.FlashcardID <= 0 {
		return fmt.Errorf("%w: flashcard ID must be positive", ErrInvalidID)
	}

	if !a.State.IsPersistable() {
		return fmt.Errorf("%w: %q", ErrInvalidAnswerState, a.State)
	}

	return nil
}
