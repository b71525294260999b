package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashcards/internal/api"
	apiMiddleware "github.com/phrazzld/flashcards/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.CORS(app.config.Server.AllowedOrigins))

	flashcardHandler := api.NewFlashcardHandler(app.practiceService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	practiceHandler := api.NewPracticeHandler(app.practiceService, app.userService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Flashcard endpoints
		r.Post("/flashcards", flashcardHandler.CreateFlashcard)
		r.Get("/flashcards", flashcardHandler.ListFlashcards)
		r.Get("/flashcards/{id}", flashcardHandler.GetFlashcard)
		r.Get("/statistics", flashcardHandler.GetStatistics)

		// User endpoints
		r.Post("/users", userHandler.CreateUser)
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/", userHandler.GetUser)
			r.Get("/practice", practiceHandler.GetPracticeStatus)
			r.Post("/flashcards/{id}/answer", practiceHandler.SubmitAnswer)
			r.Delete("/answers", practiceHandler.ResetProgress)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
