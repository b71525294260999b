package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashcards/internal/api/shared"
	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/phrazzld/flashcards/internal/service/practice"
	"github.com/samber/lo"
)

// FlashcardHandler handles flashcard and statistics HTTP requests
type FlashcardHandler struct {
	practiceService practice.Service
	logger          *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler
func NewFlashcardHandler(practiceService practice.Service, logger *slog.Logger) *FlashcardHandler {
	if practiceService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("practiceService cannot be nil for FlashcardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardHandler{
		practiceService: practiceService,
		logger:          logger.With(slog.String("component", "flashcard_handler")),
	}
}

// CreateFlashcard handles POST /flashcards requests
func (h *FlashcardHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	var req CreateFlashcardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.practiceService.CreateFlashcard(r.Context(), req.Question, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, flashcardToResponse(card))
}

// ListFlashcards handles GET /flashcards requests
func (h *FlashcardHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.practiceService.ListFlashcards(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list flashcards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lo.Map(cards, func(card *domain.Flashcard, _ int) FlashcardResponse {
		return flashcardToResponse(card)
	}))
}

// GetFlashcard handles GET /flashcards/{id} requests
func (h *FlashcardHandler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	card, err := h.practiceService.GetFlashcard(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, flashcardToResponse(card))
}

// GetStatistics handles GET /statistics requests
func (h *FlashcardHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stat, err := h.practiceService.GetStatistics(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, statisticToResponse(stat))
}
