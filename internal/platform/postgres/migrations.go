package postgres

import (
	"embed"

	"github.com/phrazzld/flashcards/internal/platform/migrations"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations is the goose migration source of the PostgreSQL schema.
var Migrations = migrations.Source{
	Dialect: "postgres",
	FS:      migrationFiles,
	Dir:     "migrations",
}
