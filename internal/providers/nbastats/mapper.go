package nbastats

import (
	"fmt"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

var (
	gameFinderColumns = []string{"GAME_ID"}
	cumeStatsColumns  = []string{"PERSON_ID", "PLAYER", "ACTUAL_MINUTES"}
	shotColumns       = []string{
		"GAME_ID", "GAME_EVENT_ID", "PLAYER_ID", "PLAYER_NAME", "PERIOD",
		"ACTION_TYPE", "SHOT_TYPE", "SHOT_ZONE_BASIC", "SHOT_ZONE_AREA",
		"SHOT_ZONE_RANGE", "SHOT_DISTANCE", "LOC_X", "LOC_Y", "SHOT_MADE_FLAG",
	}
	leagueWideColumns = []string{"SHOT_ZONE_BASIC", "SHOT_ZONE_AREA", "SHOT_ZONE_RANGE", "FGA", "FGM", "FG_PCT"}
)

func mapGameIDs(rs resultSet) ([]games.ID, error) {
	t, err := newTable(rs, gameFinderColumns...)
	if err != nil {
		return nil, err
	}
	ids := make([]games.ID, 0, len(t.rows))
	for _, row := range t.rows {
		id, err := t.str(row, "GAME_ID")
		if err != nil {
			return nil, err
		}
		if id == "" {
			return nil, fmt.Errorf("%w: empty GAME_ID", ErrMalformedResponse)
		}
		ids = append(ids, games.ID(id))
	}
	return ids, nil
}

func mapGameStats(gameID games.ID, rs resultSet) (games.Stats, error) {
	t, err := newTable(rs, cumeStatsColumns...)
	if err != nil {
		return games.Stats{}, err
	}
	stats := games.Stats{GameID: gameID, Lines: make([]games.StatLine, 0, len(t.rows))}
	for _, row := range t.rows {
		id, err := t.integer(row, "PERSON_ID")
		if err != nil {
			return games.Stats{}, err
		}
		name, err := t.str(row, "PLAYER")
		if err != nil {
			return games.Stats{}, err
		}
		minutes, err := t.optionalFloat(row, "ACTUAL_MINUTES")
		if err != nil {
			return games.Stats{}, err
		}
		stats.Lines = append(stats.Lines, games.StatLine{PlayerID: id, PlayerName: name, Minutes: minutes})
	}
	return stats, nil
}

func mapShots(rs resultSet) (shots.Set, error) {
	t, err := newTable(rs, shotColumns...)
	if err != nil {
		return nil, err
	}
	set := make(shots.Set, 0, len(t.rows))
	for _, row := range t.rows {
		ev, err := mapShot(t, row)
		if err != nil {
			return nil, err
		}
		set = append(set, ev)
	}
	return set, nil
}

func mapShot(t table, row []any) (shots.Event, error) {
	var (
		ev   shots.Event
		err  error
		made int
		id   string
	)
	if id, err = t.str(row, "GAME_ID"); err != nil {
		return ev, err
	}
	ev.GameID = games.ID(id)
	for col, dst := range map[string]*int{
		"GAME_EVENT_ID":  &ev.GameEventID,
		"PLAYER_ID":      &ev.PlayerID,
		"PERIOD":         &ev.Period,
		"SHOT_DISTANCE":  &ev.Distance,
		"SHOT_MADE_FLAG": &made,
	} {
		if *dst, err = t.integer(row, col); err != nil {
			return ev, err
		}
	}
	for col, dst := range map[string]*string{
		"PLAYER_NAME":     &ev.PlayerName,
		"ACTION_TYPE":     &ev.ActionType,
		"SHOT_TYPE":       &ev.ShotType,
		"SHOT_ZONE_BASIC": &ev.Zone,
		"SHOT_ZONE_AREA":  &ev.ZoneArea,
		"SHOT_ZONE_RANGE": &ev.ZoneRange,
	} {
		if *dst, err = t.str(row, col); err != nil {
			return ev, err
		}
	}
	if ev.LocX, err = t.float(row, "LOC_X"); err != nil {
		return ev, err
	}
	if ev.LocY, err = t.float(row, "LOC_Y"); err != nil {
		return ev, err
	}
	if made != 0 && made != 1 {
		return ev, fmt.Errorf("%w: SHOT_MADE_FLAG %d is not 0 or 1", ErrMalformedResponse, made)
	}
	ev.Made = made == 1
	return ev, nil
}

func mapLeagueWide(rs resultSet) ([]shots.BaselineRow, error) {
	t, err := newTable(rs, leagueWideColumns...)
	if err != nil {
		return nil, err
	}
	rows := make([]shots.BaselineRow, 0, len(t.rows))
	for _, row := range t.rows {
		var r shots.BaselineRow
		if r.Zone, err = t.str(row, "SHOT_ZONE_BASIC"); err != nil {
			return nil, err
		}
		if r.ZoneArea, err = t.str(row, "SHOT_ZONE_AREA"); err != nil {
			return nil, err
		}
		if r.ZoneRange, err = t.str(row, "SHOT_ZONE_RANGE"); err != nil {
			return nil, err
		}
		if r.Attempts, err = t.integer(row, "FGA"); err != nil {
			return nil, err
		}
		if r.Makes, err = t.integer(row, "FGM"); err != nil {
			return nil, err
		}
		if r.FGPct, err = t.float(row, "FG_PCT"); err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// seasonForGame derives the season and season type a stats game ID belongs to.
// IDs look like "0042400201": digit 3 is the season type, digits 4-5 the start year.
func seasonForGame(id games.ID) (season, seasonType string, err error) {
	s := string(id)
	if len(s) != 10 {
		return "", "", fmt.Errorf("nbastats: game id %q is not 10 digits", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", "", fmt.Errorf("nbastats: game id %q is not numeric", s)
		}
	}
	switch s[2] {
	case '1':
		seasonType = "Pre Season"
	case '2':
		seasonType = "Regular Season"
	case '3':
		seasonType = "All Star"
	case '4':
		seasonType = "Playoffs"
	case '5':
		seasonType = "PlayIn"
	default:
		return "", "", fmt.Errorf("nbastats: game id %q has unknown season type %c", s, s[2])
	}
	yy := int(s[3]-'0')*10 + int(s[4]-'0')
	start := 2000 + yy
	if yy >= 46 {
		start = 1900 + yy
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100), seasonType, nil
}
