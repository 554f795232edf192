package fixture

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/teams"
)

const (
	gamesPerSeason = 6
	rosterSize     = 9
)

type zone struct {
	name     string
	area     string
	rng      string
	makeRate float64
	x, y     float64
	spread   float64
	shotType string
	distance int
	action   string
}

var zones = []zone{
	{"Restricted Area", "Center(C)", "Less Than 8 ft.", 0.64, 0, 10, 25, "2PT Field Goal", 2, "Driving Layup Shot"},
	{"In The Paint (Non-RA)", "Center(C)", "8-16 ft.", 0.44, 0, 90, 40, "2PT Field Goal", 9, "Floating Jump shot"},
	{"Mid-Range", "Left Side Center(LC)", "16-24 ft.", 0.41, -110, 150, 30, "2PT Field Goal", 18, "Pullup Jump shot"},
	{"Left Corner 3", "Left Side(L)", "24+ ft.", 0.39, -225, 20, 10, "3PT Field Goal", 22, "Jump Shot"},
	{"Right Corner 3", "Right Side(R)", "24+ ft.", 0.38, 225, 20, 10, "3PT Field Goal", 22, "Jump Shot"},
	{"Above the Break 3", "Center(C)", "24+ ft.", 0.36, 0, 260, 60, "3PT Field Goal", 26, "Jump Shot"},
}

// Provider returns deterministic stats tables for offline runs and tests.
// The same team, season and season type always yield the same data.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string { return "fixture" }

// FindGames returns a fixed number of game IDs encoding the season and season type.
func (p *Provider) FindGames(ctx context.Context, teamID int, season, seasonType string) ([]games.ID, error) {
	_ = ctx
	return gameIDs(teamID, season, seasonType)
}

// GameStats returns minutes for the team's fixture roster. Bench players skip alternate games.
func (p *Provider) GameStats(ctx context.Context, teamID int, gameID games.ID) (games.Stats, error) {
	_ = ctx
	idx, err := gameIndex(gameID)
	if err != nil {
		return games.Stats{}, err
	}
	stats := games.Stats{GameID: gameID}
	for k := 0; k < rosterSize; k++ {
		if k >= 6 && (idx+k)%2 == 0 {
			continue
		}
		minutes := float64(38-3*k) + float64((idx+k)%3-1)
		stats.Lines = append(stats.Lines, games.StatLine{
			PlayerID:   playerID(teamID, k),
			PlayerName: playerName(teamID, k),
			Minutes:    minutes,
		})
	}
	return stats, nil
}

// ShotEvents returns shots for the whole fixture roster, or one player when playerID is set.
func (p *Provider) ShotEvents(ctx context.Context, teamID, player int, season, seasonType string) (shots.Set, error) {
	_ = ctx
	ids, err := gameIDs(teamID, season, seasonType)
	if err != nil {
		return nil, err
	}
	r := rand.New(rand.NewPCG(uint64(teamID), seed(season, seasonType)))
	set := make(shots.Set, 0, rosterSize*len(zones)*3)
	event := 1
	for k := 0; k < rosterSize; k++ {
		pid := playerID(teamID, k)
		for j, z := range zones {
			attempts := (k+j)%4 + 1
			for a := 0; a < attempts; a++ {
				ev := shots.Event{
					GameID:      ids[(event-1)%len(ids)],
					GameEventID: event,
					PlayerID:    pid,
					PlayerName:  playerName(teamID, k),
					Period:      (event-1)%4 + 1,
					ActionType:  z.action,
					ShotType:    z.shotType,
					Zone:        z.name,
					ZoneArea:    z.area,
					ZoneRange:   z.rng,
					Distance:    z.distance,
					LocX:        z.x + (r.Float64()*2-1)*z.spread,
					LocY:        z.y + (r.Float64()*2-1)*z.spread/2,
					Made:        r.Float64() < z.makeRate,
				}
				event++
				if player != 0 && pid != player {
					continue
				}
				set = append(set, ev)
			}
		}
	}
	return set, nil
}

// LeagueBaseline returns league-wide rows split by area, several per basic zone.
func (p *Provider) LeagueBaseline(ctx context.Context, season string) ([]shots.BaselineRow, error) {
	_ = ctx
	if _, err := startYear(season); err != nil {
		return nil, err
	}
	rows := make([]shots.BaselineRow, 0, len(zones)*2)
	for _, z := range zones {
		for i, share := range []int{6000, 4000} {
			attempts := share
			makes := int(float64(attempts)*z.makeRate) + i*10
			rows = append(rows, shots.BaselineRow{
				Zone:      z.name,
				ZoneArea:  fmt.Sprintf("%s #%d", z.area, i+1),
				ZoneRange: z.rng,
				Attempts:  attempts,
				Makes:     makes,
				FGPct:     float64(makes) / float64(attempts),
			})
		}
	}
	return rows, nil
}

func gameIDs(teamID int, season, seasonType string) ([]games.ID, error) {
	year, err := startYear(season)
	if err != nil {
		return nil, err
	}
	digit, ok := seasonTypeDigits[seasonType]
	if !ok {
		return nil, fmt.Errorf("fixture: unknown season type %q", seasonType)
	}
	ids := make([]games.ID, 0, gamesPerSeason)
	for i := 0; i < gamesPerSeason; i++ {
		ids = append(ids, games.ID(fmt.Sprintf("00%c%02d%03d%02d", digit, year%100, teamID%1000, i+1)))
	}
	return ids, nil
}

var seasonTypeDigits = map[string]byte{
	"Pre Season":     '1',
	"Regular Season": '2',
	"All Star":       '3',
	"Playoffs":       '4',
}

func gameIndex(id games.ID) (int, error) {
	s := string(id)
	if len(s) != 10 {
		return 0, fmt.Errorf("fixture: game id %q is not 10 digits", s)
	}
	n, err := strconv.Atoi(s[8:])
	if err != nil {
		return 0, fmt.Errorf("fixture: game id %q: %w", s, err)
	}
	return n - 1, nil
}

func startYear(season string) (int, error) {
	if len(season) != 7 {
		return 0, fmt.Errorf("fixture: season %q is not YYYY-YY", season)
	}
	year, err := strconv.Atoi(season[:4])
	if err != nil {
		return 0, fmt.Errorf("fixture: season %q: %w", season, err)
	}
	return year, nil
}

func seed(season, seasonType string) uint64 {
	var h uint64 = 1469598103934665603
	for _, b := range []byte(season + "|" + seasonType) {
		h ^= uint64(b)
		h *= 1099511628211
	}
	return h
}

func playerID(teamID, k int) int {
	return 1_600_000 + (teamID%1000)*100 + k
}

func playerName(teamID, k int) string {
	name := "Team"
	if team, ok := teams.NBA.ByID(teamID); ok {
		name = team.Name
	}
	return fmt.Sprintf("%s Player %d", name, k+1)
}
