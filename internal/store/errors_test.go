package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		notFound  bool
		duplicate bool
	}{
		{name: "nil error", err: nil},
		{name: "generic error", err: errors.New("some error")},
		{name: "ErrNotFound", err: ErrNotFound, notFound: true},
		{name: "ErrFlashcardNotFound", err: ErrFlashcardNotFound, notFound: true},
		{name: "wrapped ErrFlashcardNotFound", err: fmt.Errorf("save: %w", ErrFlashcardNotFound), notFound: true},
		{name: "ErrDuplicate", err: ErrDuplicate, duplicate: true},
		{name: "ErrQuestionExists", err: ErrQuestionExists, duplicate: true},
		{name: "ErrUserNameExists", err: ErrUserNameExists, duplicate: true},
		{name: "ErrAnswerLocked", err: ErrAnswerLocked},
		{
			name:      "StoreError wrapping ErrQuestionExists",
			err:       NewStoreError("flashcard", "save", "duplicate question", ErrQuestionExists),
			duplicate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.duplicate, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")

	err := NewStoreError("answer", "purge", "failed to delete answers", cause)
	assert.Equal(t, "purge operation on answer failed: failed to delete answers: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	var storeErr *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &storeErr))
	assert.Equal(t, "answer", storeErr.Entity)

	noCause := NewStoreError("user", "create", "invalid name", nil)
	assert.Equal(t, "create operation on user failed: invalid name", noCause.Error())
	assert.Nil(t, noCause.Unwrap())
}
