// Package analysis reduces shot sets to per-zone summaries and reconciles them
// against a reference.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

// pct returns makes/attempts, or NaN when there are no attempts.
func pct(makes, attempts int) float64 {
	if attempts == 0 {
		return math.NaN()
	}
	return float64(makes) / float64(attempts)
}

// Summarize groups set by zone. Attempts count events, makes count made events.
// Rows are sorted by zone name.
func Summarize(set shots.Set) []shots.ZoneSummary {
	byZone := make(map[string]*shots.ZoneSummary)
	for _, ev := range set {
		z, ok := byZone[ev.Zone]
		if !ok {
			z = &shots.ZoneSummary{Zone: ev.Zone}
			byZone[ev.Zone] = z
		}
		z.Attempts++
		if ev.Made {
			z.Makes++
		}
	}
	out := make([]shots.ZoneSummary, 0, len(byZone))
	for _, z := range byZone {
		z.FGPct = pct(z.Makes, z.Attempts)
		out = append(out, *z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Zone < out[j].Zone })
	return out
}

// SummarizeByPlayer groups set by player and zone, ordered by player name, then
// player ID, then zone.
func SummarizeByPlayer(set shots.Set) []shots.PlayerZoneSummary {
	type key struct {
		player int
		zone   string
	}
	groups := make(map[key]*shots.PlayerZoneSummary)
	for _, ev := range set {
		k := key{player: ev.PlayerID, zone: ev.Zone}
		g, ok := groups[k]
		if !ok {
			g = &shots.PlayerZoneSummary{
				PlayerID:    ev.PlayerID,
				PlayerName:  ev.PlayerName,
				ZoneSummary: shots.ZoneSummary{Zone: ev.Zone},
			}
			groups[k] = g
		}
		g.Attempts++
		if ev.Made {
			g.Makes++
		}
	}
	out := make([]shots.PlayerZoneSummary, 0, len(groups))
	for _, g := range groups {
		g.FGPct = pct(g.Makes, g.Attempts)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PlayerName != b.PlayerName {
			return a.PlayerName < b.PlayerName
		}
		if a.PlayerID != b.PlayerID {
			return a.PlayerID < b.PlayerID
		}
		return a.Zone < b.Zone
	})
	return out
}

// SummarizeBaseline folds pre-aggregated rows into one summary per zone. The
// league-wide table splits each zone by area and range, so rows are summed and
// the rate is recomputed from the totals.
func SummarizeBaseline(rows []shots.BaselineRow) ([]shots.ZoneSummary, error) {
	byZone := make(map[string]*shots.ZoneSummary)
	for i, row := range rows {
		if err := validateBaselineRow(i, row); err != nil {
			return nil, err
		}
		z, ok := byZone[row.Zone]
		if !ok {
			z = &shots.ZoneSummary{Zone: row.Zone}
			byZone[row.Zone] = z
		}
		z.Attempts += row.Attempts
		z.Makes += row.Makes
	}
	out := make([]shots.ZoneSummary, 0, len(byZone))
	for _, z := range byZone {
		z.FGPct = pct(z.Makes, z.Attempts)
		out = append(out, *z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Zone < out[j].Zone })
	return out, nil
}

func validateBaselineRow(i int, row shots.BaselineRow) error {
	var reason string
	switch {
	case row.Zone == "":
		reason = "empty zone"
	case row.Attempts < 0 || row.Makes < 0:
		reason = "negative counts"
	case row.Makes > row.Attempts:
		reason = "makes exceed attempts"
	default:
		return nil
	}
	return &domain.DataShapeError{Table: "baseline", Reason: fmt.Sprintf("row %d: %s", i, reason)}
}
