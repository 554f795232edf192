package analysis

import (
	"math"
	"sort"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

// Compare full-outer-joins team and ref on zone, one row per distinct zone,
// sorted by zone. Missing sides and undefined rates are filled with zero, so a
// zone with no attempts reads the same as one shot at 0%.
func Compare(team, ref []shots.ZoneSummary) []shots.ComparisonRow {
	rows := make(map[string]*shots.ComparisonRow)
	get := func(zone string) *shots.ComparisonRow {
		r, ok := rows[zone]
		if !ok {
			r = &shots.ComparisonRow{Zone: zone}
			rows[zone] = r
		}
		return r
	}
	for _, z := range team {
		r := get(z.Zone)
		r.AttemptsTeam += z.Attempts
		r.MakesTeam += z.Makes
	}
	for _, z := range ref {
		r := get(z.Zone)
		r.AttemptsRef += z.Attempts
		r.MakesRef += z.Makes
	}

	out := make([]shots.ComparisonRow, 0, len(rows))
	for _, r := range rows {
		r.FGPctTeam = zeroFill(pct(r.MakesTeam, r.AttemptsTeam))
		r.FGPctRef = zeroFill(pct(r.MakesRef, r.AttemptsRef))
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Zone < out[j].Zone })
	return out
}

// Swap exchanges the team and reference sides of rows.
func Swap(rows []shots.ComparisonRow) []shots.ComparisonRow {
	out := make([]shots.ComparisonRow, len(rows))
	for i, r := range rows {
		out[i] = shots.ComparisonRow{
			Zone:         r.Zone,
			AttemptsTeam: r.AttemptsRef,
			MakesTeam:    r.MakesRef,
			FGPctTeam:    r.FGPctRef,
			AttemptsRef:  r.AttemptsTeam,
			MakesRef:     r.MakesTeam,
			FGPctRef:     r.FGPctTeam,
		}
	}
	return out
}

func zeroFill(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
