package domain

// AnswerCounts holds the raw aggregate counts over all flashcards.
// TotalAnswers counts flashcards with at least one answer from any user and
// CorrectAnswers counts flashcards with at least one correct answer from any
// user; each flashcard contributes at most one to each count.
type AnswerCounts struct {
	TotalQuestions int `json:"total_questions"`
	TotalAnswers   int `json:"total_answers"`
	CorrectAnswers int `json:"correct_answers"`
}

// Statistic is the global aggregate shown to users.
type Statistic struct {
	TotalQuestions    int
	Answered          int
	AnsweredCorrectly int
}

// NewStatistic wraps aggregate counts.
func NewStatistic(counts AnswerCounts) *Statistic {
	return &Statistic{
		TotalQuestions:    counts.TotalQuestions,
		Answered:          counts.TotalAnswers,
		AnsweredCorrectly: counts.CorrectAnswers,
	}
}

// AnsweredPercent returns the share of flashcards with any answer.
func (s *Statistic) AnsweredPercent() int {
	return Percent(s.Answered, s.TotalQuestions)
}

// AnsweredCorrectlyPercent returns the share of flashcards with a correct answer.
func (s *Statistic) AnsweredCorrectlyPercent() int {
	return Percent(s.AnsweredCorrectly, s.TotalQuestions)
}

// Percent returns round(100 * part / total) using round-half-up on integers.
// A non-positive total yields 0.
func Percent(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}
