package sqlite

import (
	"embed"

	"github.com/phrazzld/flashcards/internal/platform/migrations"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations is the goose migration source of the SQLite schema.
var Migrations = migrations.Source{
	Dialect: "sqlite3",
	FS:      migrationFiles,
	Dir:     "migrations",
}
