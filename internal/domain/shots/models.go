package shots

import "github.com/preston-bernstein/nba-shot-selection/internal/domain/games"

// Event is a single field-goal attempt as reported by the stats provider.
type Event struct {
	GameID      games.ID `json:"gameId"`
	GameEventID int      `json:"gameEventId"`
	PlayerID    int      `json:"playerId"`
	PlayerName  string   `json:"playerName"`
	Period      int      `json:"period"`
	ActionType  string   `json:"actionType"`
	ShotType    string   `json:"shotType"`
	Zone        string   `json:"zone"`
	ZoneArea    string   `json:"zoneArea"`
	ZoneRange   string   `json:"zoneRange"`
	Distance    int      `json:"distance"`
	LocX        float64  `json:"locX"`
	LocY        float64  `json:"locY"`
	Made        bool     `json:"made"`
}

// Set is every shot event for a team over a season and season type.
type Set []Event

// FilterPlayers keeps events whose player is in ids, preserving order.
func (s Set) FilterPlayers(ids []int) Set {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make(Set, 0, len(s))
	for _, ev := range s {
		if _, ok := want[ev.PlayerID]; ok {
			out = append(out, ev)
		}
	}
	return out
}

// BaselineRow is a pre-aggregated reference row (league-wide tables arrive this way).
type BaselineRow struct {
	Zone      string  `json:"zone"`
	ZoneArea  string  `json:"zoneArea"`
	ZoneRange string  `json:"zoneRange"`
	Attempts  int     `json:"attempts"`
	Makes     int     `json:"makes"`
	FGPct     float64 `json:"fgPct"`
}

// ZoneSummary holds attempt/make totals for one zone. FGPct is NaN when Attempts is zero.
type ZoneSummary struct {
	Zone     string  `json:"zone"`
	Attempts int     `json:"attempts"`
	Makes    int     `json:"makes"`
	FGPct    float64 `json:"fgPct"`
}

// PlayerZoneSummary is a ZoneSummary segmented by player.
type PlayerZoneSummary struct {
	PlayerID   int    `json:"playerId"`
	PlayerName string `json:"playerName"`
	ZoneSummary
}

// ComparisonRow reconciles one zone between the team and its reference.
// A side without the zone reports zeros, not an absence marker.
type ComparisonRow struct {
	Zone         string  `json:"zone"`
	AttemptsTeam int     `json:"attemptsTeam"`
	MakesTeam    int     `json:"makesTeam"`
	FGPctTeam    float64 `json:"fgPctTeam"`
	AttemptsRef  int     `json:"attemptsRef"`
	MakesRef     int     `json:"makesRef"`
	FGPctRef     float64 `json:"fgPctRef"`
}

// ChartPoint is the plotting subset of an Event.
type ChartPoint struct {
	LocX       float64 `json:"locX"`
	LocY       float64 `json:"locY"`
	Made       bool    `json:"made"`
	PlayerName string  `json:"playerName"`
}
