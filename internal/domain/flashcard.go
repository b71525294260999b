package domain

import (
	"fmt"
	"strings"
	"time"
)

// Flashcard-specific validation errors
var (
	// ErrEmptyQuestion is returned when a flashcard question is blank.
	ErrEmptyQuestion = fmt.Errorf("%w: flashcard question cannot be empty", ErrValidation)

	// ErrEmptyAnswer is returned when a flashcard answer is blank.
	ErrEmptyAnswer = fmt.Errorf("%w: flashcard answer cannot be empty", ErrValidation)
)

// Flashcard is a question/answer pair available for practice.
// Questions are globally unique; the store enforces this with a constraint.
type Flashcard struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFlashcard creates an unsaved Flashcard. The ID is assigned by the store.
// Question and answer are kept verbatim so that answer checking stays exact.
func NewFlashcard(question, answer string) (*Flashcard, error) {
	now := time.Now().UTC()
	card := &Flashcard{
		Question:  question,
		Answer:    answer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
func (f *Flashcard) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return ErrEmptyQuestion
	}

	if strings.TrimSpace(f.Answer) == "" {
		return ErrEmptyAnswer
	}

	if f.ID < 0 {
		return ErrInvalidID
	}

	return nil
}

// IsNew reports whether the flashcard has not been persisted yet.
func (f *Flashcard) IsNew() bool {
	return f.ID == 0
}

// Check compares a submitted answer with the stored one. The comparison is an
// exact, case-sensitive string match.
func (f *Flashcard) Check(submitted string) AnswerState {
	if submitted == f.Answer {
		return AnswerStateCorrect
	}
	return AnswerStateIncorrect
}
