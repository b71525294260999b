// Package migrations applies the embedded goose migrations of a storage
// backend. goose keeps its configuration in package-level state, so every run
// is serialized and configures goose from scratch.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/pressly/goose/v3"
	"github.com/samber/lo"
)

// Commands lists the goose commands that work on embedded migrations.
var Commands = []string{"up", "up-by-one", "up-to", "down", "down-to", "redo", "reset", "status", "version"}

// Source describes the migrations of one backend.
type Source struct {
	// Dialect is the goose dialect name, e.g. "postgres" or "sqlite3".
	Dialect string
	// FS holds the migration files in Dir.
	FS  fs.FS
	Dir string
}

var mu sync.Mutex

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, src Source) error {
	return Run(ctx, db, src, "up")
}

// Run executes a goose command against db. Output of goose is forwarded to
// the logger carried by ctx.
func Run(ctx context.Context, db *sql.DB, src Source, command string, args ...string) error {
	if !IsSupported(command) {
		return fmt.Errorf("unsupported migration command %q", command)
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(src.FS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{logger: logger.FromContext(ctx).With(
		slog.String("component", "migrations"),
		slog.String("dialect", src.Dialect),
	)})

	if err := goose.SetDialect(src.Dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, src.Dir, args...); err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}
	return nil
}

// IsSupported reports whether command can run on embedded migrations.
func IsSupported(command string) bool {
	return lo.Contains(Commands, command)
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at info level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level. It does not exit; the error is returned by the
// goose call that produced it.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
