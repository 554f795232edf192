package ingest

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/season"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/teams"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers"
)

// ResolveTeam maps a full team name to its identity in roster.
func ResolveTeam(roster teams.Roster, name string) (teams.Identity, error) {
	return roster.Resolve(name)
}

// ResolveGames lists the games team played in a season and season type.
// Inputs are validated before the provider is called. Provider order is kept
// and repeated IDs are dropped.
func ResolveGames(ctx context.Context, provider providers.StatsProvider, team teams.Identity, seasonLabel, seasonType string) ([]games.ID, error) {
	s, err := season.Parse(seasonLabel)
	if err != nil {
		return nil, err
	}
	st, err := season.ParseType(seasonType)
	if err != nil {
		return nil, err
	}
	return findGames(ctx, provider, team, s, st)
}

func findGames(ctx context.Context, provider providers.StatsProvider, team teams.Identity, s season.Season, st season.Type) ([]games.ID, error) {
	ids, err := provider.FindGames(ctx, team.ID, s.String(), st.String())
	if err != nil {
		return nil, domain.Upstream(providers.OpFindGames, err)
	}
	ids = games.Dedupe(ids)
	logging.Info(logging.FromContext(ctx, nil), "resolved games",
		slog.String(logging.FieldTeam, team.Name),
		slog.String(logging.FieldSeason, s.String()),
		slog.String(logging.FieldSeasonType, st.String()),
		slog.Int(logging.FieldCount, len(ids)),
	)
	return ids, nil
}
