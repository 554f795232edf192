package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-shot-selection/internal/analysis"
	"github.com/preston-bernstein/nba-shot-selection/internal/app/comparison"
	"github.com/preston-bernstein/nba-shot-selection/internal/chart"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
	"github.com/preston-bernstein/nba-shot-selection/internal/server"
	"github.com/preston-bernstein/nba-shot-selection/internal/summary"
)

const defaultSeasonType = "Playoffs"

type shotFlags struct {
	team       string
	season     string
	seasonType string
	top        int
	refresh    bool
}

func (f *shotFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.team, "team", "", "Full team name, e.g. \"New York Knicks\"")
	cmd.Flags().StringVar(&f.season, "season", "", "Season label, e.g. 2024-25")
	cmd.Flags().StringVar(&f.seasonType, "season-type", defaultSeasonType, "Regular Season, Playoffs, Pre Season or All Star")
	cmd.Flags().IntVar(&f.top, "top", 0, "Players kept by average minutes; -1 keeps everyone (default DEFAULT_TOP_PLAYERS)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "Ignore cached tables and fetch again")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("season")
}

// topOr returns the --top value, or fallback when the flag was not given.
func (f *shotFlags) topOr(cmd *cobra.Command, fallback int) int {
	if cmd.Flags().Changed("top") {
		return f.top
	}
	return fallback
}

func compareCmd() *cobra.Command {
	var (
		flags     shotFlags
		opponent  string
		chartPath string
		summarize bool
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a team's zone shooting against the league or an opponent",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := setup(cmd)
			app, err := server.Build(cfg, logger, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			report, err := app.Comparison.Compare(ctx, comparison.Request{
				Team:       flags.team,
				Opponent:   opponent,
				Season:     flags.season,
				SeasonType: flags.seasonType,
				TopN:       flags.topOr(cmd, cfg.DefaultTop),
				Refresh:    flags.refresh,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printComparison(out, report)

			if chartPath != "" {
				if err := writeChart(chartPath, report); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nchart written to %s\n", chartPath)
			}
			if summarize {
				messages, err := summary.BuildMessages(report.Team.Name, report.Reference, report.Season, report.Rows)
				if err != nil {
					return err
				}
				text, err := app.Summarizer.Summarize(ctx, messages)
				if err != nil {
					logging.Warn(logger, "summary unavailable", logging.FieldError, err)
					return fmt.Errorf("summarize: %w", err)
				}
				fmt.Fprintf(out, "\n%s\n", text)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&opponent, "opponent", "", "Compare against this team instead of the league average")
	cmd.Flags().StringVar(&chartPath, "chart", "", "Write an SVG shot chart of the team's shots to this path")
	cmd.Flags().BoolVar(&summarize, "summarize", false, "Ask the configured Ollama model for a written summary")
	return cmd
}

func printComparison(w io.Writer, report comparison.Report) {
	fmt.Fprintf(w, "%s vs %s (%s %s)\n\n", report.Team.Name, report.Reference, report.Season, report.SeasonType)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Zone", "FGA", "FGM", "FG%", "Ref FGA", "Ref FGM", "Ref FG%", "Diff"})
	table.SetAutoFormatHeaders(false)
	for _, row := range report.Rows {
		table.Append([]string{
			row.Zone,
			strconv.Itoa(row.AttemptsTeam),
			strconv.Itoa(row.MakesTeam),
			formatPct(row.FGPctTeam),
			strconv.Itoa(row.AttemptsRef),
			strconv.Itoa(row.MakesRef),
			formatPct(row.FGPctRef),
			formatDiff(row),
		})
	}
	table.Render()

	if len(report.Players) > 0 {
		fmt.Fprintln(w)
		printPlaytime(w, report.Players)
	}
}

func writeChart(path string, report comparison.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	title := fmt.Sprintf("%s %s %s", report.Team.Name, report.Season, report.SeasonType)
	renderErr := chart.Render(f, analysis.ChartPoints(report.Shots, ""), chart.Options{Title: title})
	if err := f.Close(); err != nil && renderErr == nil {
		renderErr = err
	}
	return renderErr
}

func formatPct(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v*100, 'f', 1, 64)
}

func formatDiff(row shots.ComparisonRow) string {
	if row.AttemptsTeam == 0 || row.AttemptsRef == 0 {
		return "-"
	}
	return strconv.FormatFloat((row.FGPctTeam-row.FGPctRef)*100, 'f', 1, 64)
}
