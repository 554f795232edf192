package games

// ID is an opaque stats-provider game identifier, e.g. "0042400201".
type ID string

// StatLine is one player's row in a per-game team stats table.
// Minutes is NaN when the provider reports none for the game.
type StatLine struct {
	PlayerID   int     `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Minutes    float64 `json:"minutes"`
}

// Stats is the per-game team stats table for a single game.
type Stats struct {
	GameID ID         `json:"gameId"`
	Lines  []StatLine `json:"lines"`
}

// Dedupe drops repeated identifiers while keeping first-seen order.
func Dedupe(ids []ID) []ID {
	seen := make(map[ID]struct{}, len(ids))
	out := make([]ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
