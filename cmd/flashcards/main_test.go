package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/flashcards/internal/config"
	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/phrazzld/flashcards/internal/platform/sqlite"
	"github.com/phrazzld/flashcards/internal/service/practice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()
	log, _ := logger.GetTestLogger(t)

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "flashcards.db"))
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			LogLevel:       "debug",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, URL: "unused"},
		Practice: config.PracticeConfig{DefaultUserID: 1},
	}

	app, err := newApplicationWithDB(cfg, log, db)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	router := newTestApplication(t).setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_PracticeRoundTrip(t *testing.T) {
	t.Parallel()
	router := newTestApplication(t).setupRouter()

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := send(http.MethodPost, "/api/flashcards", `{"question":"2+2?","answer":"4"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var card struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&card))

	rec = send(http.MethodPost, "/api/flashcards", `{"question":"2+2?","answer":"5"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = send(http.MethodGet, "/api/users/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	answerPath := "/api/users/1/flashcards/" + jsonNumber(card.ID) + "/answer"
	rec = send(http.MethodPost, answerPath, `{"answer":"5"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"state":"incorrect"}`, rec.Body.String())

	rec = send(http.MethodPost, answerPath, `{"answer":"4"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"state":"correct"}`, rec.Body.String())

	rec = send(http.MethodPost, answerPath, `{"answer":"4"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = send(http.MethodGet, "/api/users/99/practice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = send(http.MethodGet, "/api/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"total_questions":1,"answered_percent":100,"answered_correctly_percent":100}`,
		rec.Body.String())

	rec = send(http.MethodDelete, "/api/users/1/answers", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = send(http.MethodGet, "/api/users/1/practice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"entries": [{"flashcard_id": `+jsonNumber(card.ID)+`, "question": "2+2?", "state": "unanswered"}],
		"completion_progress": 0
	}`, rec.Body.String())
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()
	router := newTestApplication(t).setupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/flashcards", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupAppDatabase_UnsupportedDriver(t *testing.T) {
	t.Parallel()
	log, _ := logger.GetTestLogger(t)

	_, err := setupAppDatabase(context.Background(), config.DatabaseConfig{Driver: "mysql", URL: "x"}, log)
	assert.ErrorContains(t, err, `unsupported database driver "mysql"`)

	_, err = migrationSource("mysql")
	assert.Error(t, err)
}

func TestMigrationSource(t *testing.T) {
	t.Parallel()

	src, err := migrationSource(config.DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "postgres", src.Dialect)

	src, err = migrationSource(config.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", src.Dialect)
}

func TestParseFlashcardsCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []practice.FlashcardInput
		wantErr bool
	}{
		{
			name:  "with header",
			input: "question,answer\n2+2?,4\n\"Capital of France, Europe?\",Paris\n",
			want: []practice.FlashcardInput{
				{Question: "2+2?", Answer: "4"},
				{Question: "Capital of France, Europe?", Answer: "Paris"},
			},
		},
		{
			name:  "without header",
			input: "2+2?,4\n",
			want:  []practice.FlashcardInput{{Question: "2+2?", Answer: "4"}},
		},
		{
			name:  "header only on the first line",
			input: "2+2?,4\nQuestion,Answer\n",
			want: []practice.FlashcardInput{
				{Question: "2+2?", Answer: "4"},
				{Question: "Question", Answer: "Answer"},
			},
		},
		{
			name:  "empty file",
			input: "",
		},
		{
			name:    "wrong number of fields",
			input:   "2+2?,4,extra\n",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseFlashcardsCSV(strings.NewReader(tc.input))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Commands below install the default slog logger, so they do not run in
// parallel.

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands_ImportAndPractise(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "flashcards.db")
	csvPath := filepath.Join(dir, "cards.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("question,answer\n2+2?,4\n3+3?,6\n2+2?,four\n"), 0o600))

	common := []string{"--database-driver", "sqlite", "--database-url", dbPath, "--env-file", filepath.Join(dir, "missing.env")}

	out, err := runCommand(t, "", append(common, "import", csvPath)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 flashcards, skipped 1")

	out, err = runCommand(t, "", append(common, "user", "create", "alice")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Created user 2 (alice)")

	out, err = runCommand(t, "2\n1\n4\n0\n5\n", append(common, "--user-id", "2", "interactive")...)
	require.NoError(t, err)
	assert.Contains(t, out, "The answer is correct!")
	assert.Contains(t, out, "Completion progress: 50%")

	_, err = runCommand(t, "", append(common, "--user-id", "7", "interactive")...)
	assert.ErrorContains(t, err, "user 7 does not exist")
}

func TestCommands_Migrate(t *testing.T) {
	dir := t.TempDir()
	common := []string{
		"--database-driver", "sqlite",
		"--database-url", filepath.Join(dir, "flashcards.db"),
		"--env-file", filepath.Join(dir, "missing.env"),
	}

	_, err := runCommand(t, "", append(common, "migrate", "status")...)
	assert.NoError(t, err)

	_, err = runCommand(t, "", append(common, "migrate", "create")...)
	assert.ErrorContains(t, err, `unsupported migration command "create"`)
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
