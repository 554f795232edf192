package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
	"github.com/preston-bernstein/nba-shot-selection/internal/ingest"
)

// defaultSeasonType applies when a request omits season_type.
const defaultSeasonType = "Playoffs"

type shotQuery struct {
	ingest.Request
	Opponent string
	Player   string
	Refresh  bool
}

func parseShotQuery(r *http.Request, defaultTop int) (shotQuery, error) {
	q := r.URL.Query()
	out := shotQuery{
		Request: ingest.Request{
			Team:       strings.TrimSpace(q.Get("team")),
			Season:     strings.TrimSpace(q.Get("season")),
			SeasonType: strings.TrimSpace(q.Get("season_type")),
			TopN:       defaultTop,
		},
		Opponent: strings.TrimSpace(q.Get("opponent")),
		Player:   strings.TrimSpace(q.Get("player")),
	}
	if out.Team == "" {
		return shotQuery{}, &domain.ValidationError{Field: "team", Value: "", Reason: "required"}
	}
	if out.Season == "" {
		return shotQuery{}, &domain.ValidationError{Field: "season", Value: "", Reason: "required"}
	}
	if out.SeasonType == "" {
		out.SeasonType = defaultSeasonType
	}
	if raw := strings.TrimSpace(q.Get("top")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return shotQuery{}, &domain.ValidationError{Field: "top", Value: raw, Reason: "must be an integer"}
		}
		out.TopN = n
	}
	if raw := strings.TrimSpace(q.Get("refresh")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return shotQuery{}, &domain.ValidationError{Field: "refresh", Value: raw, Reason: "must be a boolean"}
		}
		out.Refresh = b
	}
	return out, nil
}
