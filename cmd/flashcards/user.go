package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newUserCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the users whose progress is tracked",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create NAME",
		Short: "Register a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap(cmd, opts, os.Stderr, nil)
			if err != nil {
				return err
			}
			defer app.cleanup()

			user, err := app.userService.CreateUser(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s)\n", user.ID, user.Name)
			return err
		},
	})

	return cmd
}
