// Command shotselect compares an NBA team's shot selection against the league
// or an opponent.
//
// Usage:
//
//	shotselect compare --team "New York Knicks" --season 2024-25
//	shotselect compare --team "New York Knicks" --season 2024-25 --opponent "Boston Celtics" --chart knicks.svg
//	shotselect players --team "New York Knicks" --season 2024-25 --top 8
//	shotselect serve
//	shotselect cache list --kind league_baseline
//	shotselect cache purge
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-shot-selection/internal/config"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
)

const (
	appVersion  = "dev"
	serviceName = "nba-shot-selection"

	exitOK      = 0
	exitFailure = 1
	exitInput   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitCode(err)
	}
	return exitOK
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shotselect",
		Short:         "Compare NBA team shot selection by court zone",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(compareCmd())
	root.AddCommand(playersCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(cacheCmd())
	return root
}

// exitCode separates bad input from runtime failures.
func exitCode(err error) int {
	if domain.IsNotFound(err) || domain.IsValidation(err) {
		return exitInput
	}
	return exitFailure
}

// setup loads configuration and a logger that writes to stderr so stdout
// carries only command output.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger) {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: appVersion,
		Output:  cmd.ErrOrStderr(),
	})
	return cfg, logger
}
