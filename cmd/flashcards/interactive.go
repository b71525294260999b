package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/phrazzld/flashcards/internal/cli"
	"github.com/phrazzld/flashcards/internal/config"
	"github.com/phrazzld/flashcards/internal/service"
	"github.com/spf13/cobra"
)

func newInteractiveCmd(opts *rootOptions) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Practise flashcards in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Logs go to stderr and stay quiet unless asked for, so that they
			// do not interleave with prompts.
			app, err := bootstrap(cmd, opts, os.Stderr, func(cfg *config.Config) {
				if !verbose {
					cfg.Server.LogLevel = "warn"
				}
			})
			if err != nil {
				return err
			}
			defer app.cleanup()

			ctx := cmd.Context()
			userID := app.config.Practice.DefaultUserID
			if _, err := app.userService.GetUser(ctx, userID); err != nil {
				if errors.Is(err, service.ErrUserNotFound) {
					return fmt.Errorf("user %d does not exist, create one with `flashcards user create NAME`", userID)
				}
				return err
			}

			console := cli.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout(), app.practiceService, userID, app.logger)
			return console.Run(ctx)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at the configured level instead of warn")
	return cmd
}
