package handlers

import (
	"context"
	"log/slog"
	"math"
	"net/http"

	"github.com/preston-bernstein/nba-shot-selection/internal/analysis"
	"github.com/preston-bernstein/nba-shot-selection/internal/app/comparison"
	"github.com/preston-bernstein/nba-shot-selection/internal/chart"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/players"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/teams"
	"github.com/preston-bernstein/nba-shot-selection/internal/ingest"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
)

// Service is the application surface the HTTP layer depends on.
type Service interface {
	Teams() teams.Roster
	Players(ctx context.Context, req ingest.Request) (ingest.Ranking, error)
	TeamShots(ctx context.Context, req ingest.Request, refresh bool) (comparison.ShotSet, error)
	Compare(ctx context.Context, req comparison.Request) (comparison.Report, error)
}

// Handler wires HTTP routes to the comparison service.
type Handler struct {
	svc        Service
	defaultTop int
	logger     *slog.Logger
}

// NewHandler constructs a Handler. defaultTop applies when a request omits top.
func NewHandler(svc Service, defaultTop int, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, defaultTop: defaultTop, logger: logger}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Teams lists the static franchise roster.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	roster := h.svc.Teams()
	writeJSON(w, http.StatusOK, map[string]any{"teams": roster, "count": len(roster)}, loggerFromContext(r, h.logger))
}

type zoneResponse struct {
	Zone     string   `json:"zone"`
	Attempts int      `json:"attempts"`
	Makes    int      `json:"makes"`
	FGPct    *float64 `json:"fgPct"`
}

type playerZoneResponse struct {
	PlayerID   int    `json:"playerId"`
	PlayerName string `json:"playerName"`
	zoneResponse
}

type comparisonResponse struct {
	Team       teams.Identity        `json:"team"`
	Reference  string                `json:"reference"`
	Season     string                `json:"season"`
	SeasonType string                `json:"seasonType"`
	Top        int                   `json:"top"`
	Players    []players.Playtime    `json:"players,omitempty"`
	Rows       []shots.ComparisonRow `json:"rows"`
	TeamZones  []zoneResponse        `json:"teamZones"`
	RefZones   []zoneResponse        `json:"referenceZones"`
	ByPlayer   []playerZoneResponse  `json:"byPlayer"`
}

// Comparison builds a zone comparison against the league or an opponent.
func (h *Handler) Comparison(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	q, err := parseShotQuery(r, h.defaultTop)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	report, err := h.svc.Compare(r.Context(), comparison.Request{
		Team:       q.Team,
		Opponent:   q.Opponent,
		Season:     q.Season,
		SeasonType: q.SeasonType,
		TopN:       q.TopN,
		Refresh:    q.Refresh,
	})
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	resp := comparisonResponse{
		Team:       report.Team,
		Reference:  report.Reference,
		Season:     report.Season,
		SeasonType: report.SeasonType,
		Top:        report.TopN,
		Players:    report.Players,
		Rows:       report.Rows,
		TeamZones:  zoneResponses(report.TeamZones),
		RefZones:   zoneResponses(report.RefZones),
		ByPlayer:   make([]playerZoneResponse, 0, len(report.ByPlayer)),
	}
	for _, p := range report.ByPlayer {
		resp.ByPlayer = append(resp.ByPlayer, playerZoneResponse{
			PlayerID:     p.PlayerID,
			PlayerName:   p.PlayerName,
			zoneResponse: zoneResponseFor(p.ZoneSummary),
		})
	}
	if resp.Rows == nil {
		resp.Rows = []shots.ComparisonRow{}
	}
	writeJSON(w, http.StatusOK, resp, logger)
}

// Players ranks a team's players by average minutes.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	q, err := parseShotQuery(r, h.defaultTop)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	ranking, err := h.svc.Players(r.Context(), q.Request)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	selected, err := ingest.TopN(ranking.Players, q.TopN)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"team":       ranking.Team,
		"season":     ranking.Season.String(),
		"seasonType": ranking.SeasonType.String(),
		"games":      len(ranking.Games),
		"players":    selected,
	}, logger)
}

// Shots returns chart points for a team's top players, optionally one player.
func (h *Handler) Shots(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	set, q, ok := h.shotSet(w, r)
	if !ok {
		return
	}
	points := analysis.ChartPoints(set.Shots, q.Player)
	writeJSON(w, http.StatusOK, map[string]any{
		"team":       set.Team,
		"season":     set.Season,
		"seasonType": set.SeasonType,
		"top":        set.TopN,
		"count":      len(points),
		"points":     points,
	}, logger)
}

// ShotChart renders the chart points as an SVG half court.
func (h *Handler) ShotChart(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	set, q, ok := h.shotSet(w, r)
	if !ok {
		return
	}
	title := set.Team.Name + " " + set.Season + " " + set.SeasonType
	if q.Player != "" {
		title = q.Player + " " + set.Season + " " + set.SeasonType
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if err := chart.Render(w, analysis.ChartPoints(set.Shots, q.Player), chart.Options{Title: title}); err != nil {
		logging.Warn(logger, "failed to write chart", logging.FieldError, err)
	}
}

func (h *Handler) shotSet(w http.ResponseWriter, r *http.Request) (comparison.ShotSet, shotQuery, bool) {
	logger := loggerFromContext(r, h.logger)
	q, err := parseShotQuery(r, h.defaultTop)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return comparison.ShotSet{}, shotQuery{}, false
	}
	set, err := h.svc.TeamShots(r.Context(), q.Request, q.Refresh)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return comparison.ShotSet{}, shotQuery{}, false
	}
	return set, q, true
}

func zoneResponses(zones []shots.ZoneSummary) []zoneResponse {
	out := make([]zoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, zoneResponseFor(z))
	}
	return out
}

// zoneResponseFor reports an undefined rate as null since JSON has no NaN.
func zoneResponseFor(z shots.ZoneSummary) zoneResponse {
	out := zoneResponse{Zone: z.Zone, Attempts: z.Attempts, Makes: z.Makes}
	if !math.IsNaN(z.FGPct) {
		pct := z.FGPct
		out.FGPct = &pct
	}
	return out
}
