package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/phrazzld/flashcards/internal/service"
	"github.com/phrazzld/flashcards/internal/service/practice"
	"github.com/phrazzld/flashcards/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"flashcard not found", practice.ErrFlashcardNotFound, http.StatusNotFound},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound},
		{"wrapped store not found", fmt.Errorf("lookup: %w", store.ErrFlashcardNotFound), http.StatusNotFound},
		{"duplicate question", &practice.DuplicateQuestionError{Question: "q"}, http.StatusConflict},
		{"already correct", practice.ErrAlreadyCorrect, http.StatusConflict},
		{"user name taken", service.ErrUserNameTaken, http.StatusConflict},
		{"store duplicate from a lost race", &practice.PersistenceError{
			Operation: "create_flashcard",
			Err:       store.NewStoreError("flashcard", "save", "failed", store.ErrQuestionExists),
		}, http.StatusConflict},
		{"validation", domain.ErrEmptyAnswer, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Question cannot be empty", GetSafeErrorMessage(domain.ErrEmptyQuestion))
	assert.Equal(t, "Invalid user ID", GetSafeErrorMessage(domain.ErrInvalidUserID))
	assert.Equal(t, "This question is already answered", GetSafeErrorMessage(practice.ErrAlreadyCorrect))

	// Internal details never leak.
	msg := GetSafeErrorMessage(errors.New("pq: password authentication failed for user admin"))
	assert.Equal(t, "An unexpected error occurred", msg)
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New("Key: 'CreateUserRequest.Name' Error:Field validation for 'Name' failed on the 'max' tag")
	assert.Equal(t, "Invalid Name: too long", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
