package ingest

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/season"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/teams"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers"
)

// allTeamPlayers asks the provider for every player on the team in one call.
const allTeamPlayers = 0

// FetchShotSet retrieves the team's shots with a single provider call and keeps
// those taken by playerIDs, preserving provider order.
func FetchShotSet(ctx context.Context, provider providers.StatsProvider, team teams.Identity, playerIDs []int, s season.Season, st season.Type) (shots.Set, error) {
	all, err := provider.ShotEvents(ctx, team.ID, allTeamPlayers, s.String(), st.String())
	if err != nil {
		return nil, domain.Upstream(providers.OpShotEvents, err)
	}
	filtered := all.FilterPlayers(playerIDs)
	logging.Info(logging.FromContext(ctx, nil), "fetched shot set",
		slog.String(logging.FieldTeam, team.Name),
		slog.Int("shots_total", len(all)),
		slog.Int(logging.FieldCount, len(filtered)),
	)
	return filtered, nil
}
