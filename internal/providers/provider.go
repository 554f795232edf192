package providers

import (
	"context"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

// StatsProvider fetches the upstream tables the shot-selection pipeline consumes.
// season is a "YYYY-YY" string and seasonType the provider's title-case spelling,
// e.g. "Regular Season". Both are validated before a provider is called.
type StatsProvider interface {
	// FindGames lists the games a team played in a season, in provider order.
	FindGames(ctx context.Context, teamID int, season, seasonType string) ([]games.ID, error)
	// GameStats returns the per-player stats table for one team in one game.
	GameStats(ctx context.Context, teamID int, gameID games.ID) (games.Stats, error)
	// ShotEvents returns every field-goal attempt for the team. playerID 0 means all players.
	ShotEvents(ctx context.Context, teamID, playerID int, season, seasonType string) (shots.Set, error)
	// LeagueBaseline returns the pre-aggregated league-wide zone table for a season.
	LeagueBaseline(ctx context.Context, season string) ([]shots.BaselineRow, error)
}

// Operation names used in logs and upstream error messages.
const (
	OpFindGames      = "find_games"
	OpGameStats      = "game_stats"
	OpShotEvents     = "shot_events"
	OpLeagueBaseline = "league_baseline"
)
