package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Registers the pgx driver
	"github.com/phrazzld/flashcards/internal/config"
	"github.com/phrazzld/flashcards/internal/platform/migrations"
	"github.com/phrazzld/flashcards/internal/platform/postgres"
	"github.com/phrazzld/flashcards/internal/platform/sqlite"
	"github.com/phrazzld/flashcards/internal/redact"
)

// setupAppDatabase opens the configured database. Postgres connections get a
// connection pool and are pinged; SQLite files are created and migrated on
// open.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	log := logger.With(
		slog.String("database_driver", cfg.Driver),
		slog.String("database_url", redact.DatabaseURL(cfg.URL)),
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("pgx", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		log.Info("database connection established")
		return db, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		log.Info("database opened")
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// migrationSource returns the embedded migrations of a driver.
func migrationSource(driver string) (migrations.Source, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Migrations, nil
	case config.DriverSQLite:
		return sqlite.Migrations, nil
	default:
		return migrations.Source{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}
