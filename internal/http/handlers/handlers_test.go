package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nba-shot-selection/internal/app/comparison"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/players"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/season"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/teams"
	"github.com/preston-bernstein/nba-shot-selection/internal/ingest"
	"github.com/preston-bernstein/nba-shot-selection/internal/testutil"
)

var knicks = teams.Identity{Name: "New York Knicks", ID: 1610612752}

type stubService struct {
	ranking ingest.Ranking
	set     comparison.ShotSet
	report  comparison.Report
	err     error

	gotRequest ingest.Request
	gotRefresh bool
	gotCompare comparison.Request
}

func (s *stubService) Teams() teams.Roster { return teams.NBA }

func (s *stubService) Players(ctx context.Context, req ingest.Request) (ingest.Ranking, error) {
	s.gotRequest = req
	return s.ranking, s.err
}

func (s *stubService) TeamShots(ctx context.Context, req ingest.Request, refresh bool) (comparison.ShotSet, error) {
	s.gotRequest = req
	s.gotRefresh = refresh
	return s.set, s.err
}

func (s *stubService) Compare(ctx context.Context, req comparison.Request) (comparison.Report, error) {
	s.gotCompare = req
	return s.report, s.err
}

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/v1/teams", h.Teams)
	r.Get("/v1/players", h.Players)
	r.Get("/v1/comparison", h.Comparison)
	r.Get("/v1/shots", h.Shots)
	r.Get("/v1/shots/chart.svg", h.ShotChart)
	return r
}

func TestHealth(t *testing.T) {
	h := NewHandler(&stubService{}, 5, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := NewHandler(&stubService{}, 5, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestTeamsListsRoster(t *testing.T) {
	h := NewHandler(&stubService{}, 5, nil)
	rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/v1/teams", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Teams []teams.Team `json:"teams"`
		Count int          `json:"count"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Count != len(teams.NBA) || len(resp.Teams) != len(teams.NBA) {
		t.Fatalf("expected full roster, got %d", resp.Count)
	}
}

func TestComparisonPassesQueryAndEncodesNaNAsNull(t *testing.T) {
	svc := &stubService{report: comparison.Report{
		Team:       knicks,
		Reference:  comparison.LeagueReference,
		Season:     "2024-25",
		SeasonType: "Playoffs",
		TopN:       3,
		TeamZones:  []shots.ZoneSummary{{Zone: "Corner 3", Attempts: 0, Makes: 0, FGPct: math.NaN()}},
		RefZones:   []shots.ZoneSummary{{Zone: "Corner 3", Attempts: 10, Makes: 4, FGPct: 0.4}},
		Rows: []shots.ComparisonRow{
			{Zone: "Corner 3", AttemptsRef: 10, MakesRef: 4, FGPctRef: 0.4},
		},
	}}
	h := NewHandler(svc, 5, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodGet,
		"/v1/comparison?team=New+York+Knicks&season=2024-25&top=3&refresh=true", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	if svc.gotCompare.Team != "New York Knicks" || svc.gotCompare.TopN != 3 || !svc.gotCompare.Refresh {
		t.Fatalf("unexpected request %+v", svc.gotCompare)
	}
	if svc.gotCompare.SeasonType != defaultSeasonType {
		t.Fatalf("expected default season type, got %q", svc.gotCompare.SeasonType)
	}
	if svc.gotCompare.Opponent != "" {
		t.Fatalf("expected league comparison, got opponent %q", svc.gotCompare.Opponent)
	}

	var resp struct {
		Reference string `json:"reference"`
		TeamZones []struct {
			Zone  string   `json:"zone"`
			FGPct *float64 `json:"fgPct"`
		} `json:"teamZones"`
		RefZones []struct {
			FGPct *float64 `json:"fgPct"`
		} `json:"referenceZones"`
		Rows []shots.ComparisonRow `json:"rows"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Reference != comparison.LeagueReference {
		t.Fatalf("unexpected reference %q", resp.Reference)
	}
	if len(resp.TeamZones) != 1 || resp.TeamZones[0].FGPct != nil {
		t.Fatalf("expected null rate for empty zone, got %+v", resp.TeamZones)
	}
	if resp.RefZones[0].FGPct == nil || *resp.RefZones[0].FGPct != 0.4 {
		t.Fatalf("expected reference rate 0.4, got %+v", resp.RefZones[0].FGPct)
	}
	if len(resp.Rows) != 1 || resp.Rows[0].FGPctTeam != 0 {
		t.Fatalf("expected zero-filled row, got %+v", resp.Rows)
	}
}

func TestComparisonWithOpponent(t *testing.T) {
	svc := &stubService{report: comparison.Report{Team: knicks, Reference: "Boston Celtics"}}
	h := NewHandler(svc, 5, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodGet,
		"/v1/comparison?team=New+York+Knicks&season=2024-25&season_type=Regular+Season&opponent=Boston+Celtics", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if svc.gotCompare.Opponent != "Boston Celtics" || svc.gotCompare.SeasonType != "Regular Season" {
		t.Fatalf("unexpected request %+v", svc.gotCompare)
	}
	if svc.gotCompare.TopN != 5 {
		t.Fatalf("expected default top, got %d", svc.gotCompare.TopN)
	}

	var resp map[string]any
	testutil.DecodeJSON(t, rr, &resp)
	rows, ok := resp["rows"].([]any)
	if !ok || len(rows) != 0 {
		t.Fatalf("expected empty rows array, got %v", resp["rows"])
	}
}

func TestComparisonRejectsBadQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"missing team", "?season=2024-25", "team"},
		{"missing season", "?team=New+York+Knicks", "season"},
		{"bad top", "?team=New+York+Knicks&season=2024-25&top=five", "top"},
		{"bad refresh", "?team=New+York+Knicks&season=2024-25&refresh=maybe", "refresh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			h := NewHandler(svc, 5, nil)
			rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/v1/comparison"+tt.query, nil)
			testutil.AssertStatus(t, rr, http.StatusBadRequest)

			var resp map[string]string
			testutil.DecodeJSON(t, rr, &resp)
			if !strings.Contains(resp["error"], tt.field) {
				t.Fatalf("expected error to name %s, got %q", tt.field, resp["error"])
			}
			if svc.gotCompare.Team != "" {
				t.Fatalf("expected service not called")
			}
		})
	}
}

func TestComparisonMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown team", &domain.NotFoundError{Kind: "team", Name: "Fake Team"}, http.StatusNotFound},
		{"bad season", &domain.ValidationError{Field: "season", Value: "2024", Reason: "expected YYYY-YY"}, http.StatusBadRequest},
		{"upstream", domain.Upstream("FindGames", errors.New("503")), http.StatusBadGateway},
		{"corrupt cache", &domain.DataShapeError{Table: "team_shotsets", Reason: "bad parquet"}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, 5, nil)
			rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/v1/comparison?team=Fake+Team&season=2024-25", nil)
			testutil.AssertStatus(t, rr, tt.want)
		})
	}
}

func TestPlayersAppliesTopN(t *testing.T) {
	svc := &stubService{ranking: ingest.Ranking{
		Team:       knicks,
		Season:     season.FromStartYear(2024),
		SeasonType: season.Playoffs,
		Games:      []games.ID{"0042400201", "0042400202"},
		Players: []players.Playtime{
			{PlayerID: 1, PlayerName: "A", AvgMinutes: 36},
			{PlayerID: 2, PlayerName: "B", AvgMinutes: 30},
			{PlayerID: 3, PlayerName: "C", AvgMinutes: 12},
		},
	}}
	h := NewHandler(svc, 5, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/v1/players?team=New+York+Knicks&season=2024-25&top=2", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Season  string             `json:"season"`
		Games   int                `json:"games"`
		Players []players.Playtime `json:"players"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Season != "2024-25" || resp.Games != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(resp.Players) != 2 || resp.Players[0].PlayerName != "A" || resp.Players[1].PlayerName != "B" {
		t.Fatalf("expected top two players, got %+v", resp.Players)
	}
}

func TestPlayersRejectsNegativeTop(t *testing.T) {
	h := NewHandler(&stubService{}, 5, nil)
	rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/v1/players?team=New+York+Knicks&season=2024-25&top=-3", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestShotsFiltersByPlayer(t *testing.T) {
	svc := &stubService{set: comparison.ShotSet{
		Team:       knicks,
		Season:     "2024-25",
		SeasonType: "Playoffs",
		TopN:       2,
		Shots:      testutil.SampleShotSet(),
	}}
	h := NewHandler(svc, 5, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/v1/shots?team=New+York+Knicks&season=2024-25&player=Player+Two", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Count  int                `json:"count"`
		Points []shots.ChartPoint `json:"points"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Count != 2 || len(resp.Points) != 2 {
		t.Fatalf("expected two points for player two, got %+v", resp)
	}
	for _, p := range resp.Points {
		if p.PlayerName != "Player Two" {
			t.Fatalf("unexpected player %q", p.PlayerName)
		}
	}
}

func TestShotChartRendersSVG(t *testing.T) {
	svc := &stubService{set: comparison.ShotSet{
		Team:       knicks,
		Season:     "2024-25",
		SeasonType: "Playoffs",
		Shots:      testutil.SampleShotSet(),
	}}
	h := NewHandler(svc, 5, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/v1/shots/chart.svg?team=New+York+Knicks&season=2024-25", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Fatalf("expected svg content type, got %q", got)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<svg") || !strings.Contains(body, "New York Knicks 2024-25 Playoffs") {
		t.Fatalf("expected titled svg, got %s", body)
	}
}

func TestShotChartPropagatesServiceError(t *testing.T) {
	h := NewHandler(&stubService{err: &domain.NotFoundError{Kind: "team", Name: "Fake"}}, 5, nil)
	rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/v1/shots/chart.svg?team=Fake&season=2024-25", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected json error, got %q", got)
	}
}
