package analysis

import "github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"

// ChartPoints keeps the plotting columns of set. A non-empty player limits the
// points to that player's shots.
func ChartPoints(set shots.Set, player string) []shots.ChartPoint {
	out := make([]shots.ChartPoint, 0, len(set))
	for _, ev := range set {
		if player != "" && ev.PlayerName != player {
			continue
		}
		out = append(out, shots.ChartPoint{
			LocX:       ev.LocX,
			LocY:       ev.LocY,
			Made:       ev.Made,
			PlayerName: ev.PlayerName,
		})
	}
	return out
}
