package cache

import (
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

// shotRow is the columnar layout of a cached shot set. Column names follow the
// stats provider's shot chart headers.
type shotRow struct {
	GameID      string  `parquet:"game_id"`
	GameEventID int     `parquet:"game_event_id"`
	PlayerID    int     `parquet:"player_id"`
	PlayerName  string  `parquet:"player_name"`
	Period      int     `parquet:"period"`
	ActionType  string  `parquet:"action_type"`
	ShotType    string  `parquet:"shot_type"`
	Zone        string  `parquet:"shot_zone_basic"`
	ZoneArea    string  `parquet:"shot_zone_area"`
	ZoneRange   string  `parquet:"shot_zone_range"`
	Distance    int     `parquet:"shot_distance"`
	LocX        float64 `parquet:"loc_x"`
	LocY        float64 `parquet:"loc_y"`
	Made        bool    `parquet:"shot_made_flag"`
}

// shotColumns must be present in a cached shot set for it to be served.
var shotColumns = []string{"shot_zone_basic", "shot_made_flag", "player_id", "loc_x", "loc_y"}

// baselineColumns must be present in a cached league baseline.
var baselineColumns = []string{"shot_zone_basic", "fga", "fgm"}

type baselineRow struct {
	Zone      string  `parquet:"shot_zone_basic"`
	ZoneArea  string  `parquet:"shot_zone_area"`
	ZoneRange string  `parquet:"shot_zone_range"`
	Attempts  int     `parquet:"fga"`
	Makes     int     `parquet:"fgm"`
	FGPct     float64 `parquet:"fg_pct"`
}

func toShotRows(set shots.Set) []shotRow {
	rows := make([]shotRow, 0, len(set))
	for _, ev := range set {
		rows = append(rows, shotRow{
			GameID:      string(ev.GameID),
			GameEventID: ev.GameEventID,
			PlayerID:    ev.PlayerID,
			PlayerName:  ev.PlayerName,
			Period:      ev.Period,
			ActionType:  ev.ActionType,
			ShotType:    ev.ShotType,
			Zone:        ev.Zone,
			ZoneArea:    ev.ZoneArea,
			ZoneRange:   ev.ZoneRange,
			Distance:    ev.Distance,
			LocX:        ev.LocX,
			LocY:        ev.LocY,
			Made:        ev.Made,
		})
	}
	return rows
}

func fromShotRows(rows []shotRow) shots.Set {
	set := make(shots.Set, 0, len(rows))
	for _, r := range rows {
		set = append(set, shots.Event{
			GameID:      games.ID(r.GameID),
			GameEventID: r.GameEventID,
			PlayerID:    r.PlayerID,
			PlayerName:  r.PlayerName,
			Period:      r.Period,
			ActionType:  r.ActionType,
			ShotType:    r.ShotType,
			Zone:        r.Zone,
			ZoneArea:    r.ZoneArea,
			ZoneRange:   r.ZoneRange,
			Distance:    r.Distance,
			LocX:        r.LocX,
			LocY:        r.LocY,
			Made:        r.Made,
		})
	}
	return set
}

func toBaselineRows(in []shots.BaselineRow) []baselineRow {
	rows := make([]baselineRow, 0, len(in))
	for _, r := range in {
		rows = append(rows, baselineRow(r))
	}
	return rows
}

func fromBaselineRows(rows []baselineRow) []shots.BaselineRow {
	out := make([]shots.BaselineRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, shots.BaselineRow(r))
	}
	return out
}
