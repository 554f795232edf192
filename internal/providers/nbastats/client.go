package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers"
)

// Config controls how the stats client reaches stats.nba.com.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches stats.nba.com tables and maps them to domain models.
// It does no pacing or retrying of its own; wrap it with the providers middleware.
type Client struct {
	baseURL    string
	httpClient httpDoer
	now        func() time.Time
}

var _ providers.StatsProvider = (*Client)(nil)

// NewClient constructs a stats client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// FindGames lists the team's games for a season and season type via leaguegamefinder.
func (c *Client) FindGames(ctx context.Context, teamID int, season, seasonType string) ([]games.ID, error) {
	q := url.Values{}
	q.Set("PlayerOrTeam", "T")
	q.Set("TeamID", strconv.Itoa(teamID))
	q.Set("Season", season)
	q.Set("SeasonType", seasonType)
	q.Set("LeagueID", leagueID)

	rs, err := c.fetch(ctx, endpointGameFinder, q)
	if err != nil {
		return nil, err
	}
	return mapGameIDs(rs)
}

// GameStats returns the team's per-player stats for one game via cumestatsteam.
func (c *Client) GameStats(ctx context.Context, teamID int, gameID games.ID) (games.Stats, error) {
	season, seasonType, err := seasonForGame(gameID)
	if err != nil {
		return games.Stats{}, err
	}
	q := url.Values{}
	q.Set("GameIDs", string(gameID))
	q.Set("TeamID", strconv.Itoa(teamID))
	q.Set("Season", season)
	q.Set("SeasonType", seasonType)
	q.Set("LeagueID", leagueID)

	rs, err := c.fetch(ctx, endpointCumeStats, q)
	if err != nil {
		return games.Stats{}, err
	}
	return mapGameStats(gameID, rs)
}

// ShotEvents returns field-goal attempts via shotchartdetail. playerID 0 returns the whole team.
func (c *Client) ShotEvents(ctx context.Context, teamID, playerID int, season, seasonType string) (shots.Set, error) {
	q := url.Values{}
	q.Set("TeamID", strconv.Itoa(teamID))
	q.Set("PlayerID", strconv.Itoa(playerID))
	q.Set("Season", season)
	q.Set("SeasonType", seasonType)
	q.Set("ContextMeasure", "FGA")
	q.Set("LeagueID", leagueID)
	for _, zero := range []string{"LastNGames", "Month", "OpponentTeamID", "Period"} {
		q.Set(zero, "0")
	}
	for _, empty := range []string{
		"AheadBehind", "ClutchTime", "ContextFilter", "DateFrom", "DateTo", "EndPeriod",
		"EndRange", "GameID", "GameSegment", "Location", "Outcome", "PlayerPosition",
		"Position", "RangeType", "RookieYear", "SeasonSegment", "StartPeriod",
		"StartRange", "VsConference", "VsDivision",
	} {
		q.Set(empty, "")
	}

	rs, err := c.fetch(ctx, endpointShotChart, q)
	if err != nil {
		return nil, err
	}
	return mapShots(rs)
}

// LeagueBaseline returns league-wide zone totals via shotchartleaguewide.
func (c *Client) LeagueBaseline(ctx context.Context, season string) ([]shots.BaselineRow, error) {
	q := url.Values{}
	q.Set("LeagueID", leagueID)
	q.Set("Season", season)

	rs, err := c.fetch(ctx, endpointLeagueWide, q)
	if err != nil {
		return nil, err
	}
	return mapLeagueWide(rs)
}

func (c *Client) fetch(ctx context.Context, endpoint string, q url.Values) (resultSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint, nil)
	if err != nil {
		return resultSet{}, err
	}
	req.URL.RawQuery = q.Encode()
	setBrowserHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return resultSet{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return resultSet{}, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    fmt.Sprintf("nbastats: %s rate limited", endpoint),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resultSet{}, fmt.Errorf("nbastats: %s unexpected status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload statsResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return resultSet{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, endpoint, err)
	}
	return payload.first()
}
