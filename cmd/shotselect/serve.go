package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-shot-selection/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the comparison HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := setup(cmd)
			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			ctx, stop := context.WithCancel(cmd.Context())
			defer stop()
			srv.Run(ctx, stop)
			return nil
		},
	}
}
