package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-shot-selection/internal/cache"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
	"github.com/preston-bernstein/nba-shot-selection/internal/server"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or invalidate cached tables",
	}
	cmd.AddCommand(cacheListCmd())
	cmd.AddCommand(cachePurgeCmd())
	return cmd
}

func cacheListCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := kindsFor(kind)
			if err != nil {
				return err
			}
			cfg, logger := setup(cmd)
			store, closeStore, err := server.BuildStore(cfg.Cache, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Kind", "Name", "Written"})
			table.SetAutoFormatHeaders(false)
			for _, k := range kinds {
				entries, err := store.List(cmd.Context(), k)
				if err != nil {
					return err
				}
				for _, e := range entries {
					table.Append([]string{string(e.Kind), e.Name, e.WrittenAt.UTC().Format("2006-01-02 15:04:05")})
				}
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Limit to one kind: "+kindNames())
	return cmd
}

func cachePurgeCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete cached tables so the next run fetches fresh data",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := kindsFor(kind)
			if err != nil {
				return err
			}
			cfg, logger := setup(cmd)
			store, closeStore, err := server.BuildStore(cfg.Cache, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			removed := 0
			for _, k := range kinds {
				n, err := store.Purge(cmd.Context(), k)
				removed += n
				if err != nil {
					return err
				}
			}
			logging.Info(logger, "cache purged", logging.FieldCount, removed)
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached tables\n", removed)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Limit to one kind: "+kindNames())
	return cmd
}

func kindsFor(raw string) ([]cache.Kind, error) {
	if strings.TrimSpace(raw) == "" {
		return cache.Kinds, nil
	}
	k, err := cache.ParseKind(raw)
	if err != nil {
		return nil, err
	}
	return []cache.Kind{k}, nil
}

func kindNames() string {
	names := make([]string, 0, len(cache.Kinds))
	for _, k := range cache.Kinds {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
