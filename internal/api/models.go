package api

import (
	"time"

	"github.com/phrazzld/flashcards/internal/domain"
)

// CreateFlashcardRequest defines the payload for creating a flashcard.
type CreateFlashcardRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
}

// FlashcardResponse represents a flashcard in API responses.
type FlashcardResponse struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatisticsResponse carries the global statistics.
type StatisticsResponse struct {
	TotalQuestions           int `json:"total_questions"`
	AnsweredPercent          int `json:"answered_percent"`
	AnsweredCorrectlyPercent int `json:"answered_correctly_percent"`
}

// CreateUserRequest defines the payload for registering a user.
type CreateUserRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PracticeEntryResponse is one flashcard of a practice status.
type PracticeEntryResponse struct {
	FlashcardID int64  `json:"flashcard_id"`
	Question    string `json:"question"`
	State       string `json:"state"`
}

// PracticeStatusResponse lists every flashcard with the user's answer state.
type PracticeStatusResponse struct {
	Entries            []PracticeEntryResponse `json:"entries"`
	CompletionProgress int                     `json:"completion_progress"`
}

// SubmitAnswerRequest defines the payload for answering a flashcard. The
// answer may be empty but must be present.
type SubmitAnswerRequest struct {
	Answer *string `json:"answer" validate:"required"`
}

// SubmitAnswerResponse reports the state of the stored answer.
type SubmitAnswerResponse struct {
	State string `json:"state"`
}

func flashcardToResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:        card.ID,
		Question:  card.Question,
		Answer:    card.Answer,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}

func statisticToResponse(stat *domain.Statistic) StatisticsResponse {
	return StatisticsResponse{
		TotalQuestions:           stat.TotalQuestions,
		AnsweredPercent:          stat.AnsweredPercent(),
		AnsweredCorrectlyPercent: stat.AnsweredCorrectlyPercent(),
	}
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

func practiceStatusToResponse(status *domain.PracticeStatus) PracticeStatusResponse {
	entries := make([]PracticeEntryResponse, 0, len(status.Entries))
	for _, entry := range status.Entries {
		entries = append(entries, PracticeEntryResponse{
			FlashcardID: entry.Flashcard.ID,
			Question:    entry.Question(),
			State:       entry.State.String(),
		})
	}
	return PracticeStatusResponse{
		Entries:            entries,
		CompletionProgress: status.CompletionProgress(),
	}
}
