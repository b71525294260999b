package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashcards/internal/api/shared"
	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/phrazzld/flashcards/internal/service"
	"github.com/phrazzld/flashcards/internal/service/practice"
)

// PracticeHandler handles the per-user practice HTTP requests
type PracticeHandler struct {
	practiceService practice.Service
	userService     service.UserService
	logger          *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler
func NewPracticeHandler(
	practiceService practice.Service,
	userService service.UserService,
	logger *slog.Logger,
) *PracticeHandler {
	if practiceService == nil || userService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("services cannot be nil for PracticeHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PracticeHandler{
		practiceService: practiceService,
		userService:     userService,
		logger:          logger.With(slog.String("component", "practice_handler")),
	}
}

// requireUser resolves the {userID} path parameter to an existing user. The
// boolean is false when an error response was already written.
func (h *PracticeHandler) requireUser(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	userID, ok := handlePathID(w, r, "userID", log)
	if !ok {
		return 0, false
	}

	if _, err := h.userService.GetUser(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "")
		return 0, false
	}

	return userID, true
}

// GetPracticeStatus handles GET /users/{userID}/practice requests
func (h *PracticeHandler) GetPracticeStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.requireUser(w, r, log)
	if !ok {
		return
	}

	status, err := h.practiceService.GetPracticeStatus(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get practice status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, practiceStatusToResponse(status))
}

// SubmitAnswer handles POST /users/{userID}/flashcards/{id}/answer requests
func (h *PracticeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.requireUser(w, r, log)
	if !ok {
		return
	}

	flashcardID, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.practiceService.GetFlashcard(r.Context(), flashcardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	state, err := h.practiceService.AcceptAnswer(r.Context(), card, userID, *req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("answer submitted",
		slog.Int64("user_id", userID),
		slog.Int64("flashcard_id", flashcardID),
		slog.String("state", state.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, SubmitAnswerResponse{State: state.String()})
}

// ResetProgress handles DELETE /users/{userID}/answers requests
func (h *PracticeHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.requireUser(w, r, log)
	if !ok {
		return
	}

	if err := h.practiceService.ResetProgress(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to reset progress")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
