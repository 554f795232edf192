package players

// Playtime is a player's average minutes over the games they appeared in.
type Playtime struct {
	PlayerID    int     `json:"playerId"`
	PlayerName  string  `json:"playerName"`
	AvgMinutes  float64 `json:"avgMinutes"`
	GamesPlayed int     `json:"gamesPlayed"`
}

// IDs returns the player identifiers in ranking order.
func IDs(ranked []Playtime) []int {
	ids := make([]int, 0, len(ranked))
	for _, p := range ranked {
		ids = append(ids, p.PlayerID)
	}
	return ids
}
