package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/phrazzld/flashcards/internal/platform/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [command] [args...]",
		Short: "Run database migrations",
		Long: "Run goose migrations against the configured database.\n\n" +
			"Supported commands: " + strings.Join(migrations.Commands, ", ") + ". Defaults to up.",
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) > 0 {
				command, args = args[0], args[1:]
			}
			if !migrations.IsSupported(command) {
				return fmt.Errorf("unsupported migration command %q", command)
			}

			cfg, err := loadAppConfig(cmd, opts)
			if err != nil {
				return err
			}
			l, err := setupAppLogger(cfg, os.Stdout)
			if err != nil {
				return err
			}

			// A correlation ID ties together every log line of one run.
			log := l.With(
				slog.String("correlation_id", uuid.New().String()),
				slog.String("command", command),
			)
			ctx := logger.WithLogger(cmd.Context(), log)

			src, err := migrationSource(cfg.Database.Driver)
			if err != nil {
				return err
			}

			db, err := setupAppDatabase(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error("error closing database connection", slog.String("error", err.Error()))
				}
			}()

			log.Info("executing migrations")
			if err := migrations.Run(ctx, db, src, command, args...); err != nil {
				log.Error("migrations failed", slog.String("error", err.Error()))
				return err
			}
			log.Info("migrations completed")
			return nil
		},
	}
}
