package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashcards/internal/config"
	"github.com/phrazzld/flashcards/internal/platform/postgres"
	"github.com/phrazzld/flashcards/internal/platform/sqlite"
	"github.com/phrazzld/flashcards/internal/service"
	"github.com/phrazzld/flashcards/internal/service/practice"
	"github.com/phrazzld/flashcards/internal/store"
)

// application holds the dependencies shared by every command.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Store interfaces
	flashcardStore store.FlashcardStore
	answerStore    store.AnswerStore
	userStore      store.UserStore

	// Service interfaces
	practiceService practice.Service
	userService     service.UserService
}

// newApplication opens the database and wires stores and services for the
// configured backend.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	app, err := newApplicationWithDB(cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

// newApplicationWithDB wires an application around an open database.
func newApplicationWithDB(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		app.flashcardStore = postgres.NewPostgresFlashcardStore(db, logger)
		app.answerStore = postgres.NewPostgresAnswerStore(db, logger)
		app.userStore = postgres.NewPostgresUserStore(db, logger)
	case config.DriverSQLite:
		app.flashcardStore = sqlite.NewFlashcardStore(db, logger)
		app.answerStore = sqlite.NewAnswerStore(db, logger)
		app.userStore = sqlite.NewUserStore(db, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	app.practiceService = practice.NewService(app.flashcardStore, app.answerStore, logger)
	app.userService = service.NewUserService(app.userStore, logger)

	logger.Debug("application initialized")
	return app, nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
}
