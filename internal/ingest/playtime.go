package ingest

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strconv"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/players"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/teams"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers"
)

// AllPlayers selects every ranked player.
const AllPlayers = -1

// CollectGameStats fetches the team's stats table for each game, one call at a
// time in game order. Pacing comes from the provider wrapper, so callers must
// pass a paced provider when talking to a real upstream.
func CollectGameStats(ctx context.Context, provider providers.StatsProvider, team teams.Identity, ids []games.ID) ([]games.Stats, error) {
	logger := logging.FromContext(ctx, nil)
	out := make([]games.Stats, 0, len(ids))
	for i, id := range ids {
		stats, err := provider.GameStats(ctx, team.ID, id)
		if err != nil {
			return nil, domain.Upstream(providers.OpGameStats, err)
		}
		out = append(out, stats)
		logging.Info(logger, "collected game stats",
			slog.String(logging.FieldGameID, string(id)),
			slog.Int("game", i+1),
			slog.Int("games", len(ids)),
		)
	}
	return out, nil
}

// RankPlaytime averages each player's minutes over the games they appear in and
// sorts descending. Ties keep the order in which players first appear.
func RankPlaytime(tables []games.Stats) []players.Playtime {
	type acc struct {
		name  string
		total float64
		games int
	}
	order := make([]int, 0)
	byID := make(map[int]*acc)
	for _, table := range tables {
		for _, line := range table.Lines {
			a, ok := byID[line.PlayerID]
			if !ok {
				a = &acc{name: line.PlayerName}
				byID[line.PlayerID] = a
				order = append(order, line.PlayerID)
			}
			if math.IsNaN(line.Minutes) {
				continue
			}
			a.total += line.Minutes
			a.games++
		}
	}

	ranked := make([]players.Playtime, 0, len(order))
	for _, id := range order {
		a := byID[id]
		avg := 0.0
		if a.games > 0 {
			avg = a.total / float64(a.games)
		}
		ranked = append(ranked, players.Playtime{
			PlayerID:    id,
			PlayerName:  a.name,
			AvgMinutes:  avg,
			GamesPlayed: a.games,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AvgMinutes > ranked[j].AvgMinutes
	})
	return ranked
}

// TopN keeps the first n ranked players. AllPlayers keeps everyone; n larger
// than the ranking is truncated silently.
func TopN(ranked []players.Playtime, n int) ([]players.Playtime, error) {
	if err := ValidateTopN(n); err != nil {
		return nil, err
	}
	if n == AllPlayers || n >= len(ranked) {
		return append([]players.Playtime(nil), ranked...), nil
	}
	return append([]players.Playtime(nil), ranked[:n]...), nil
}

// ValidateTopN rejects player counts below AllPlayers.
func ValidateTopN(n int) error {
	if n < AllPlayers {
		return &domain.ValidationError{Field: "top", Value: strconv.Itoa(n), Reason: "must be -1 (all players) or a non-negative count"}
	}
	return nil
}
