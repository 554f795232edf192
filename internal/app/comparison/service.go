package comparison

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-shot-selection/internal/analysis"
	"github.com/preston-bernstein/nba-shot-selection/internal/cache"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/players"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/season"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/teams"
	"github.com/preston-bernstein/nba-shot-selection/internal/ingest"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers"
)

// LeagueReference labels comparisons against the league-wide baseline.
const LeagueReference = "League Average"

// Request selects a team shot set and the reference it is compared against.
// An empty Opponent compares against the league baseline.
type Request struct {
	Team       string
	Opponent   string
	Season     string
	SeasonType string
	TopN       int
	Refresh    bool
}

// ShotSet is a team's cached or freshly fetched shot set.
type ShotSet struct {
	Team       teams.Identity     `json:"team"`
	Season     string             `json:"season"`
	SeasonType string             `json:"seasonType"`
	TopN       int                `json:"top"`
	Players    []players.Playtime `json:"players,omitempty"`
	Shots      shots.Set          `json:"shots"`
	CachedAt   time.Time          `json:"cachedAt"`
}

// Report is a completed comparison.
type Report struct {
	Team       teams.Identity            `json:"team"`
	Reference  string                    `json:"reference"`
	Season     string                    `json:"season"`
	SeasonType string                    `json:"seasonType"`
	TopN       int                       `json:"top"`
	Players    []players.Playtime        `json:"players,omitempty"`
	TeamZones  []shots.ZoneSummary       `json:"teamZones"`
	RefZones   []shots.ZoneSummary       `json:"referenceZones"`
	ByPlayer   []shots.PlayerZoneSummary `json:"byPlayer"`
	Rows       []shots.ComparisonRow     `json:"rows"`
	Shots      shots.Set                 `json:"-"`
}

// Service wraps the ingest pipeline with the table cache and reduces both
// sides of a comparison.
type Service struct {
	pipeline *ingest.Pipeline
	provider providers.StatsProvider
	loader   *cache.Loader
	policy   cache.Policy
	logger   *slog.Logger
}

// NewService constructs a Service. provider serves the league baseline and
// should be the same paced chain the pipeline uses.
func NewService(pipeline *ingest.Pipeline, provider providers.StatsProvider, loader *cache.Loader, policy cache.Policy, logger *slog.Logger) *Service {
	return &Service{
		pipeline: pipeline,
		provider: provider,
		loader:   loader,
		policy:   policy,
		logger:   logger,
	}
}

// Teams returns the roster requests are resolved against.
func (s *Service) Teams() teams.Roster {
	return s.pipeline.Roster()
}

// Players ranks a team's players by average minutes. Rankings are not cached.
func (s *Service) Players(ctx context.Context, req ingest.Request) (ingest.Ranking, error) {
	return s.pipeline.Rank(ctx, req)
}

// TeamShots returns the team's shot set filtered to its top players, computing
// it through the pipeline on a cache miss.
func (s *Service) TeamShots(ctx context.Context, req ingest.Request, refresh bool) (ShotSet, error) {
	team, sv, st, err := s.pipeline.Validate(req)
	if err != nil {
		return ShotSet{}, err
	}
	key := cache.TeamShotSetKey(team.Name, req.TopN, sv.String(), st.String())
	return s.shotSet(ctx, key, team, req, refresh)
}

// OpponentShots returns every shot the opponent took, ingesting all of its players on a miss.
func (s *Service) OpponentShots(ctx context.Context, opponent, seasonLabel, seasonType string, refresh bool) (ShotSet, error) {
	req := ingest.Request{Team: opponent, Season: seasonLabel, SeasonType: seasonType, TopN: ingest.AllPlayers}
	team, sv, st, err := s.pipeline.Validate(req)
	if err != nil {
		return ShotSet{}, err
	}
	key := cache.OpponentShotSetKey(team.Name, sv.String(), st.String())
	return s.shotSet(ctx, key, team, req, refresh)
}

// Baseline returns the league-wide zone table for season.
func (s *Service) Baseline(ctx context.Context, label string, refresh bool) ([]shots.BaselineRow, error) {
	sv, err := season.Parse(label)
	if err != nil {
		return nil, err
	}
	key := cache.LeagueBaselineKey(sv.String())
	table, err := s.loader.Fetch(ctx, key, s.policyFor(refresh), func(ctx context.Context) (cache.Table, error) {
		if s.provider == nil {
			return cache.Table{}, ingest.ErrNoProvider
		}
		rows, err := s.provider.LeagueBaseline(ctx, sv.String())
		if err != nil {
			return cache.Table{}, domain.Upstream(providers.OpLeagueBaseline, err)
		}
		return cache.Table{Baseline: rows}, nil
	})
	if err != nil {
		return nil, err
	}
	return table.Baseline, nil
}

// Compare builds the zone comparison for req.
func (s *Service) Compare(ctx context.Context, req Request) (Report, error) {
	teamReq := ingest.Request{Team: req.Team, Season: req.Season, SeasonType: req.SeasonType, TopN: req.TopN}
	team, sv, st, err := s.pipeline.Validate(teamReq)
	if err != nil {
		return Report{}, err
	}
	var opponent teams.Identity
	if strings.TrimSpace(req.Opponent) != "" {
		if opponent, err = ingest.ResolveTeam(s.pipeline.Roster(), req.Opponent); err != nil {
			return Report{}, err
		}
	}

	logger := logging.FromContext(ctx, s.logger)
	if logger != nil {
		logger = logger.With(
			slog.String(logging.FieldTeam, team.Name),
			slog.String(logging.FieldSeason, sv.String()),
			slog.String(logging.FieldSeasonType, st.String()),
		)
		ctx = logging.WithLogger(ctx, logger)
	}

	teamSet, err := s.TeamShots(ctx, teamReq, req.Refresh)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Team:       team,
		Reference:  LeagueReference,
		Season:     sv.String(),
		SeasonType: st.String(),
		TopN:       req.TopN,
		Players:    teamSet.Players,
		TeamZones:  analysis.Summarize(teamSet.Shots),
		ByPlayer:   analysis.SummarizeByPlayer(teamSet.Shots),
		Shots:      teamSet.Shots,
	}

	if opponent.Name != "" {
		oppSet, err := s.OpponentShots(ctx, opponent.Name, sv.String(), st.String(), req.Refresh)
		if err != nil {
			return Report{}, err
		}
		report.Reference = opponent.Name
		report.RefZones = analysis.Summarize(oppSet.Shots)
	} else {
		rows, err := s.Baseline(ctx, sv.String(), req.Refresh)
		if err != nil {
			return Report{}, err
		}
		if report.RefZones, err = analysis.SummarizeBaseline(rows); err != nil {
			return Report{}, err
		}
	}

	report.Rows = analysis.Compare(report.TeamZones, report.RefZones)
	logging.Info(logger, "comparison built",
		slog.String("reference", report.Reference),
		slog.Int("zones", len(report.Rows)),
		slog.Int("shots", len(teamSet.Shots)),
	)
	return report, nil
}

func (s *Service) shotSet(ctx context.Context, key cache.Key, team teams.Identity, req ingest.Request, refresh bool) (ShotSet, error) {
	var ran []players.Playtime
	table, err := s.loader.Fetch(ctx, key, s.policyFor(refresh), func(ctx context.Context) (cache.Table, error) {
		res, err := s.pipeline.Run(ctx, req)
		if err != nil {
			return cache.Table{}, err
		}
		ran = res.Selected
		return cache.Table{Shots: res.Shots}, nil
	})
	if err != nil {
		return ShotSet{}, err
	}
	out := ShotSet{
		Team:       team,
		Season:     key.Season,
		SeasonType: key.SeasonType,
		TopN:       req.TopN,
		Players:    ran,
		Shots:      table.Shots,
		CachedAt:   table.WrittenAt,
	}
	if out.Shots == nil {
		out.Shots = shots.Set{}
	}
	return out, nil
}

func (s *Service) policyFor(refresh bool) cache.Policy {
	p := s.policy
	p.ForceRefresh = p.ForceRefresh || refresh
	return p
}
