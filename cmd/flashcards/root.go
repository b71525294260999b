package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/flashcards/internal/config"
	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags that are not configuration keys.
type rootOptions struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "flashcards",
		Short:         "A tool for memorising questions and their answers",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "configuration file (default ./config.yaml if present)")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file loaded before reading the environment (default .env)")
	flags.Int("port", 8080, "HTTP server port")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.StringSlice("allowed-origins", nil, "origins allowed by CORS")
	flags.String("database-driver", config.DriverSQLite, "storage backend (postgres, sqlite)")
	flags.String("database-url", "flashcards.db", "postgres connection URL or sqlite file path")
	flags.Int64("user-id", 1, "user whose progress the interactive trainer tracks")

	cmd.AddCommand(
		newServeCmd(opts),
		newInteractiveCmd(opts),
		newMigrateCmd(opts),
		newUserCmd(opts),
		newImportCmd(opts),
	)

	return cmd
}

// loadAppConfig loads the configuration with the command's flags bound on top
// of every other source.
func loadAppConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigFile: opts.configFile,
		EnvFile:    opts.envFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppLogger installs the default logger for a command.
func setupAppLogger(cfg *config.Config, out io.Writer) (*slog.Logger, error) {
	l, err := logger.SetupWithWriter(cfg.Server, out)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Debug("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))
	return l, nil
}

// bootstrap loads configuration, sets up logging to out and opens the
// application. The caller must call cleanup on the returned application.
func bootstrap(cmd *cobra.Command, opts *rootOptions, out io.Writer, adjust func(*config.Config)) (*application, error) {
	cfg, err := loadAppConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	if adjust != nil {
		adjust(cfg)
	}

	l, err := setupAppLogger(cfg, out)
	if err != nil {
		return nil, err
	}

	return newApplication(cmd.Context(), cfg, l)
}
