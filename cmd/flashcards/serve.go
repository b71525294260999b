package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := bootstrap(cmd, opts, os.Stdout, nil)
			if err != nil {
				return err
			}
			defer app.cleanup()

			return app.Run(cmd.Context())
		},
	}
}
