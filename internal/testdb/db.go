//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/flashcards/internal/platform/migrations"
	"github.com/phrazzld/flashcards/internal/platform/postgres"
	"github.com/phrazzld/flashcards/internal/redact"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection checks and migrations.
const TestTimeout = 10 * time.Second

var migrateOnce sync.Once

// GetTestDB opens the test database and applies the migrations. The test is
// skipped when no database is configured, except on CI where it fails.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		if isCIEnvironment() {
			t.Fatalf("%s must be set for integration tests on CI", EnvDatabaseURL)
		}
		t.Skipf("%s not set, skipping integration test", EnvDatabaseURL)
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open test database %s", redact.DatabaseURL(dbURL))
	t.Cleanup(func() { _ = db.Close() })

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	require.NoError(t, db.PingContext(ctx), "failed to ping test database %s", redact.DatabaseURL(dbURL))

	var migrateErr error
	migrateOnce.Do(func() {
		migrateErr = migrations.Up(ctx, db, postgres.Migrations)
	})
	require.NoError(t, migrateErr, "failed to apply migrations")

	return db
}
