package testutil

import (
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

// SampleShot returns a shot event for player in zone.
func SampleShot(playerID int, name, zone string, made bool) shots.Event {
	return shots.Event{
		GameID:      "0042400201",
		GameEventID: playerID*100 + len(zone),
		PlayerID:    playerID,
		PlayerName:  name,
		Period:      1,
		ActionType:  "Jump Shot",
		ShotType:    "2PT Field Goal",
		Zone:        zone,
		Made:        made,
	}
}

// SampleShotSet returns a small two-player set spanning three zones.
func SampleShotSet() shots.Set {
	return shots.Set{
		SampleShot(1, "Player One", "Restricted Area", true),
		SampleShot(1, "Player One", "Mid-Range", false),
		SampleShot(2, "Player Two", "Above the Break 3", true),
		SampleShot(2, "Player Two", "Restricted Area", false),
	}
}

// SampleBaseline returns league-wide rows with two areas for the restricted area.
func SampleBaseline() []shots.BaselineRow {
	return []shots.BaselineRow{
		{Zone: "Restricted Area", ZoneArea: "Center(C)", ZoneRange: "Less Than 8 ft.", Attempts: 60, Makes: 40, FGPct: 0.667},
		{Zone: "Restricted Area", ZoneArea: "Left Side(L)", ZoneRange: "Less Than 8 ft.", Attempts: 40, Makes: 20, FGPct: 0.5},
		{Zone: "Above the Break 3", ZoneArea: "Center(C)", ZoneRange: "24+ ft.", Attempts: 100, Makes: 36, FGPct: 0.36},
	}
}

// SampleGameStats returns a stats table for one game.
func SampleGameStats(id games.ID) games.Stats {
	return games.Stats{
		GameID: id,
		Lines: []games.StatLine{
			{PlayerID: 1, PlayerName: "Player One", Minutes: 34},
			{PlayerID: 2, PlayerName: "Player Two", Minutes: 28},
		},
	}
}
