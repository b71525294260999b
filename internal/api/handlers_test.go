package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/flashcards/internal/api/middleware"
	"github.com/phrazzld/flashcards/internal/api/shared"
	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/phrazzld/flashcards/internal/mocks"
	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/phrazzld/flashcards/internal/service"
	"github.com/phrazzld/flashcards/internal/service/practice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func testCard(id int64, question, answer string) *domain.Flashcard {
	return &domain.Flashcard{
		ID:        id,
		Question:  question,
		Answer:    answer,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

// newTestRouter registers every handler the way the server does.
func newTestRouter(t *testing.T, practiceSvc *mocks.MockPracticeService, userSvc *mocks.MockUserService) http.Handler {
	t.Helper()
	log, _ := logger.GetTestLogger(t)

	flashcardHandler := NewFlashcardHandler(practiceSvc, log)
	userHandler := NewUserHandler(userSvc, log)
	practiceHandler := NewPracticeHandler(practiceSvc, userSvc, log)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(log))
	r.Route("/api", func(r chi.Router) {
		r.Post("/flashcards", flashcardHandler.CreateFlashcard)
		r.Get("/flashcards", flashcardHandler.ListFlashcards)
		r.Get("/flashcards/{id}", flashcardHandler.GetFlashcard)
		r.Get("/statistics", flashcardHandler.GetStatistics)
		r.Post("/users", userHandler.CreateUser)
		r.Get("/users/{userID}", userHandler.GetUser)
		r.Get("/users/{userID}/practice", practiceHandler.GetPracticeStatus)
		r.Post("/users/{userID}/flashcards/{id}/answer", practiceHandler.SubmitAnswer)
		r.Delete("/users/{userID}/answers", practiceHandler.ResetProgress)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func defaultUserService() *mocks.MockUserService {
	return &mocks.MockUserService{User: &domain.User{ID: 1, Name: "default", CreatedAt: testTime}}
}

func TestFlashcardHandler_CreateFlashcard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
		wantError  string
		wantCalls  int
	}{
		{
			name:       "created",
			body:       `{"question":"2+2?","answer":"4"}`,
			wantStatus: http.StatusCreated,
			wantCalls:  1,
		},
		{
			name:       "duplicate question",
			body:       `{"question":"2+2?","answer":"4"}`,
			createErr:  &practice.DuplicateQuestionError{Question: "2+2?"},
			wantStatus: http.StatusConflict,
			wantError:  "Flashcard with this question already exists",
			wantCalls:  1,
		},
		{
			name:       "missing answer",
			body:       `{"question":"2+2?"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid Answer: required field",
		},
		{
			name:       "malformed body",
			body:       `{"question":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:       "unknown field",
			body:       `{"question":"q","answer":"a","extra":1}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:       "blank question rejected by domain",
			body:       `{"question":"  ","answer":"a"}`,
			createErr:  domain.ErrEmptyQuestion,
			wantStatus: http.StatusBadRequest,
			wantError:  "Question cannot be empty",
			wantCalls:  1,
		},
		{
			name:       "storage failure",
			body:       `{"question":"q","answer":"a"}`,
			createErr:  &practice.PersistenceError{Operation: "create_flashcard", Message: "failed", Err: errors.New("connection refused")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "An unexpected error occurred",
			wantCalls:  1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mocks.MockPracticeService{
				CreateFlashcardFn: func(_ context.Context, question, answer string) (*domain.Flashcard, error) {
					if tc.createErr != nil {
						return nil, tc.createErr
					}
					return testCard(7, question, answer), nil
				},
			}
			router := newTestRouter(t, svc, defaultUserService())

			rec := doRequest(t, router, http.MethodPost, "/api/flashcards", tc.body)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantCalls, svc.Calls("CreateFlashcard"))
			if tc.wantError != "" {
				resp := decodeError(t, rec)
				assert.Equal(t, tc.wantError, resp.Error)
				assert.NotEmpty(t, resp.TraceID)
				return
			}

			var card FlashcardResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&card))
			assert.Equal(t, int64(7), card.ID)
			assert.Equal(t, "2+2?", card.Question)
			assert.Equal(t, "4", card.Answer)
		})
	}
}

func TestFlashcardHandler_ListFlashcards(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockPracticeService{
		ListFlashcardsFn: func(context.Context) ([]*domain.Flashcard, error) {
			return []*domain.Flashcard{testCard(1, "q1", "a1"), testCard(2, "q2", "a2")}, nil
		},
	}
	router := newTestRouter(t, svc, defaultUserService())

	rec := doRequest(t, router, http.MethodGet, "/api/flashcards", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var cards []FlashcardResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "q1", cards[0].Question)
	assert.Equal(t, "a2", cards[1].Answer)
}

func TestFlashcardHandler_ListFlashcards_Empty(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockPracticeService{
		ListFlashcardsFn: func(context.Context) ([]*domain.Flashcard, error) {
			return nil, nil
		},
	}
	router := newTestRouter(t, svc, defaultUserService())

	rec := doRequest(t, router, http.MethodGet, "/api/flashcards", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestFlashcardHandler_GetFlashcard(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockPracticeService{
		GetFlashcardFn: func(_ context.Context, id int64) (*domain.Flashcard, error) {
			if id == 3 {
				return testCard(3, "q3", "a3"), nil
			}
			return nil, practice.ErrFlashcardNotFound
		},
	}
	router := newTestRouter(t, svc, defaultUserService())

	t.Run("found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/flashcards/3", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var card FlashcardResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&card))
		assert.Equal(t, "q3", card.Question)
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/flashcards/99", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Flashcard not found", decodeError(t, rec).Error)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/flashcards/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid id", decodeError(t, rec).Error)
	})
}

func TestFlashcardHandler_GetStatistics(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockPracticeService{
		GetStatisticsFn: func(context.Context) (*domain.Statistic, error) {
			return domain.NewStatistic(domain.AnswerCounts{TotalQuestions: 3, TotalAnswers: 2, CorrectAnswers: 1}), nil
		},
	}
	router := newTestRouter(t, svc, defaultUserService())

	rec := doRequest(t, router, http.MethodGet, "/api/statistics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"total_questions":3,"answered_percent":67,"answered_correctly_percent":33}`,
		rec.Body.String())
}

func TestUserHandler(t *testing.T) {
	t.Parallel()

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		users := &mocks.MockUserService{
			CreateUserFn: func(_ context.Context, name string) (*domain.User, error) {
				return &domain.User{ID: 2, Name: name, CreatedAt: testTime}, nil
			},
		}
		router := newTestRouter(t, &mocks.MockPracticeService{}, users)

		rec := doRequest(t, router, http.MethodPost, "/api/users", `{"name":"alice"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var user UserResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
		assert.Equal(t, int64(2), user.ID)
		assert.Equal(t, "alice", user.Name)
	})

	t.Run("name taken", func(t *testing.T) {
		t.Parallel()
		users := &mocks.MockUserService{Err: service.ErrUserNameTaken}
		router := newTestRouter(t, &mocks.MockPracticeService{}, users)

		rec := doRequest(t, router, http.MethodPost, "/api/users", `{"name":"alice"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "User name already exists", decodeError(t, rec).Error)
	})

	t.Run("name too long", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(t, &mocks.MockPracticeService{}, defaultUserService())

		rec := doRequest(t, router, http.MethodPost, "/api/users",
			`{"name":"`+strings.Repeat("x", 65)+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid Name: too long", decodeError(t, rec).Error)
	})

	t.Run("get missing user", func(t *testing.T) {
		t.Parallel()
		users := &mocks.MockUserService{Err: service.ErrUserNotFound}
		router := newTestRouter(t, &mocks.MockPracticeService{}, users)

		rec := doRequest(t, router, http.MethodGet, "/api/users/5", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decodeError(t, rec).Error)
	})
}

func TestPracticeHandler_GetPracticeStatus(t *testing.T) {
	t.Parallel()

	var gotUserID int64
	svc := &mocks.MockPracticeService{
		GetPracticeStatusFn: func(_ context.Context, userID int64) (*domain.PracticeStatus, error) {
			gotUserID = userID
			return domain.NewPracticeStatus([]domain.AnsweredFlashcard{
				{Flashcard: *testCard(1, "q1", "a1"), Answer: &domain.Answer{State: domain.AnswerStateCorrect}},
				{Flashcard: *testCard(2, "q2", "a2")},
			}), nil
		},
	}
	router := newTestRouter(t, svc, defaultUserService())

	rec := doRequest(t, router, http.MethodGet, "/api/users/1/practice", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gotUserID)
	assert.JSONEq(t, `{
		"entries": [
			{"flashcard_id": 1, "question": "q1", "state": "correct"},
			{"flashcard_id": 2, "question": "q2", "state": "unanswered"}
		],
		"completion_progress": 50
	}`, rec.Body.String())
}

func TestPracticeHandler_GetPracticeStatus_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockPracticeService{}
	router := newTestRouter(t, svc, &mocks.MockUserService{Err: service.ErrUserNotFound})

	rec := doRequest(t, router, http.MethodGet, "/api/users/42/practice", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, svc.Calls("GetPracticeStatus"))
}

func TestPracticeHandler_SubmitAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		body       string
		users      *mocks.MockUserService
		acceptErr  error
		state      domain.AnswerState
		wantStatus int
		wantBody   string
		wantError  string
	}{
		{
			name:       "correct",
			path:       "/api/users/1/flashcards/3/answer",
			body:       `{"answer":"4"}`,
			state:      domain.AnswerStateCorrect,
			wantStatus: http.StatusOK,
			wantBody:   `{"state":"correct"}`,
		},
		{
			name:       "empty answer is incorrect",
			path:       "/api/users/1/flashcards/3/answer",
			body:       `{"answer":""}`,
			state:      domain.AnswerStateIncorrect,
			wantStatus: http.StatusOK,
			wantBody:   `{"state":"incorrect"}`,
		},
		{
			name:       "already correct",
			path:       "/api/users/1/flashcards/3/answer",
			body:       `{"answer":"4"}`,
			acceptErr:  practice.ErrAlreadyCorrect,
			wantStatus: http.StatusConflict,
			wantError:  "This question is already answered",
		},
		{
			name:       "unknown flashcard",
			path:       "/api/users/1/flashcards/99/answer",
			body:       `{"answer":"4"}`,
			wantStatus: http.StatusNotFound,
			wantError:  "Flashcard not found",
		},
		{
			name:       "unknown user",
			path:       "/api/users/8/flashcards/3/answer",
			body:       `{"answer":"4"}`,
			users:      &mocks.MockUserService{Err: service.ErrUserNotFound},
			wantStatus: http.StatusNotFound,
			wantError:  "User not found",
		},
		{
			name:       "missing answer field",
			path:       "/api/users/1/flashcards/3/answer",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid Answer: required field",
		},
		{
			name:       "invalid user id",
			path:       "/api/users/0/flashcards/3/answer",
			body:       `{"answer":"4"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid userID",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var submitted string
			svc := &mocks.MockPracticeService{
				GetFlashcardFn: func(_ context.Context, id int64) (*domain.Flashcard, error) {
					if id != 3 {
						return nil, practice.ErrFlashcardNotFound
					}
					return testCard(3, "2+2?", "4"), nil
				},
				AcceptAnswerFn: func(_ context.Context, card *domain.Flashcard, userID int64, answer string) (domain.AnswerState, error) {
					submitted = answer
					assert.Equal(t, int64(3), card.ID)
					assert.Equal(t, int64(1), userID)
					return tc.state, tc.acceptErr
				},
			}
			users := tc.users
			if users == nil {
				users = defaultUserService()
			}
			router := newTestRouter(t, svc, users)

			rec := doRequest(t, router, http.MethodPost, tc.path, tc.body)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, decodeError(t, rec).Error)
				return
			}
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
			assert.Equal(t, 1, svc.Calls("AcceptAnswer"))
			if tc.state == domain.AnswerStateIncorrect {
				assert.Empty(t, submitted)
			}
		})
	}
}

func TestPracticeHandler_ResetProgress(t *testing.T) {
	t.Parallel()

	var resetFor int64
	svc := &mocks.MockPracticeService{
		ResetProgressFn: func(_ context.Context, userID int64) error {
			resetFor = userID
			return nil
		},
	}
	router := newTestRouter(t, svc, defaultUserService())

	rec := doRequest(t, router, http.MethodDelete, "/api/users/1/answers", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, int64(1), resetFor)
}

func TestPracticeHandler_ResetProgress_Failure(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockPracticeService{
		Err: &practice.PersistenceError{Operation: "reset_progress", Message: "failed", Err: errors.New("boom")},
	}
	router := newTestRouter(t, svc, defaultUserService())

	rec := doRequest(t, router, http.MethodDelete, "/api/users/1/answers", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to reset progress", decodeError(t, rec).Error)
}

func TestNewHandlers_PanicOnNilService(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewFlashcardHandler(nil, nil) })
	assert.Panics(t, func() { NewUserHandler(nil, nil) })
	assert.Panics(t, func() { NewPracticeHandler(nil, &mocks.MockUserService{}, nil) })
}
