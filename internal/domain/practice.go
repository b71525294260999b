package domain

import "github.com/samber/lo"

// AnsweredFlashcard pairs a flashcard with the answer of a single user, if any.
type AnsweredFlashcard struct {
	Flashcard Flashcard
	Answer    *Answer
}

// PracticeEntry is a flashcard together with the answer state of one user.
type PracticeEntry struct {
	Flashcard Flashcard
	State     AnswerState
}

// NewPracticeEntry derives the entry for an answered flashcard. A missing
// answer means the flashcard is unanswered.
func NewPracticeEntry(item AnsweredFlashcard) PracticeEntry {
	state := AnswerStateUnanswered
	if item.Answer != nil {
		state = item.Answer.State
	}
	return PracticeEntry{Flashcard: item.Flashcard, State: state}
}

// Question returns the question of the entry's flashcard.
func (e PracticeEntry) Question() string {
	return e.Flashcard.Question
}

// IsPending reports whether the entry can still be practised.
func (e PracticeEntry) IsPending() bool {
	return e.State != AnswerStateCorrect
}

// PracticeStatus is a per-user snapshot of every flashcard and its state.
type PracticeStatus struct {
	Entries []PracticeEntry
}

// NewPracticeStatus builds a practice status preserving the order of items.
func NewPracticeStatus(items []AnsweredFlashcard) *PracticeStatus {
	return &PracticeStatus{
		Entries: lo.Map(items, func(item AnsweredFlashcard, _ int) PracticeEntry {
			return NewPracticeEntry(item)
		}),
	}
}

// CorrectCount returns the number of entries answered correctly.
func (s *PracticeStatus) CorrectCount() int {
	return lo.CountBy(s.Entries, func(e PracticeEntry) bool {
		return e.State == AnswerStateCorrect
	})
}

// CompletionProgress returns the percentage of entries answered correctly.
// An empty status has 0% progress.
func (s *PracticeStatus) CompletionProgress() int {
	return Percent(s.CorrectCount(), len(s.Entries))
}

// Pending returns the entries that are unanswered or answered incorrectly.
func (s *PracticeStatus) Pending() []PracticeEntry {
	return lo.Filter(s.Entries, func(e PracticeEntry, _ int) bool {
		return e.IsPending()
	})
}

// FindByQuestion returns the entry with exactly the given question.
func (s *PracticeStatus) FindByQuestion(question string) (PracticeEntry, bool) {
	return lo.Find(s.Entries, func(e PracticeEntry) bool {
		return e.Question() == question
	})
}
