package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/players"
	"github.com/preston-bernstein/nba-shot-selection/internal/ingest"
	"github.com/preston-bernstein/nba-shot-selection/internal/server"
)

func playersCmd() *cobra.Command {
	var flags shotFlags
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Rank a team's players by average minutes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := setup(cmd)
			app, err := server.Build(cfg, logger, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			top := flags.topOr(cmd, cfg.DefaultTop)
			if err := ingest.ValidateTopN(top); err != nil {
				return err
			}
			ranking, err := app.Comparison.Players(cmd.Context(), ingest.Request{
				Team:       flags.team,
				Season:     flags.season,
				SeasonType: flags.seasonType,
				TopN:       top,
			})
			if err != nil {
				return err
			}
			selected, err := ingest.TopN(ranking.Players, top)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s, %d games\n\n", ranking.Team.Name, ranking.Season, ranking.SeasonType, len(ranking.Games))
			printPlaytime(out, selected)
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.Flags().MarkHidden("refresh")
	return cmd
}

func printPlaytime(w io.Writer, ranked []players.Playtime) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Player", "Avg Min", "Games"})
	table.SetAutoFormatHeaders(false)
	for i, p := range ranked {
		table.Append([]string{
			strconv.Itoa(i + 1),
			p.PlayerName,
			strconv.FormatFloat(p.AvgMinutes, 'f', 1, 64),
			strconv.Itoa(p.GamesPlayed),
		})
	}
	table.Render()
}
