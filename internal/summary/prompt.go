// Package summary turns comparison tables into prose through a chat model.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

// Message roles understood by chat endpoints.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// AnalystPrompt frames the model as a shot-selection analyst.
const AnalystPrompt = `You are an expert NBA analyst who interprets the provided team and player shot chart data.
Be clear and concise. Highlight:
1. Where the team takes the most shots.
2. Strengths and weaknesses compared to the opponent or league average.
3. Any interesting patterns or strategic notes.`

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Summarizer produces prose from a conversation.
type Summarizer interface {
	Summarize(ctx context.Context, messages []Message) (string, error)
}

type zoneLine struct {
	Zone         string  `json:"zone"`
	TeamAttempts int     `json:"team_attempts"`
	TeamFGPct    float64 `json:"team_fg_pct"`
	RefAttempts  int     `json:"reference_attempts"`
	RefFGPct     float64 `json:"reference_fg_pct"`
}

// BuildMessages builds the analyst conversation for a comparison of team
// against reference.
func BuildMessages(team, reference, season string, rows []shots.ComparisonRow) ([]Message, error) {
	lines := make([]zoneLine, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, zoneLine{
			Zone:         r.Zone,
			TeamAttempts: r.AttemptsTeam,
			TeamFGPct:    round3(r.FGPctTeam),
			RefAttempts:  r.AttemptsRef,
			RefFGPct:     round3(r.FGPctRef),
		})
	}
	table, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encode comparison: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the shot selection of the %s", team)
	if season != "" {
		fmt.Fprintf(&b, " in %s", season)
	}
	fmt.Fprintf(&b, " compared to %s.\n", reference)
	fmt.Fprintf(&b, "Zone comparison: %s", table)

	return []Message{
		{Role: RoleSystem, Content: AnalystPrompt},
		{Role: RoleUser, Content: b.String()},
	}, nil
}

func round3(v float64) float64 {
	return float64(int64(v*1000+0.5)) / 1000
}
