package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/players"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/season"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/teams"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
	"github.com/preston-bernstein/nba-shot-selection/internal/metrics"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers"
)

// ErrNoProvider is returned when a pipeline is built without a stats provider.
var ErrNoProvider = errors.New("ingest: no stats provider configured")

// Request names the team, season and player cut for one pipeline run.
type Request struct {
	Team       string
	Season     string
	SeasonType string
	// TopN is the number of highest-minute players to keep; AllPlayers keeps everyone.
	TopN int
}

// Ranking is the output of the playtime stage.
type Ranking struct {
	Team       teams.Identity
	Season     season.Season
	SeasonType season.Type
	Games      []games.ID
	Players    []players.Playtime
}

// Result is a completed pipeline run.
type Result struct {
	Ranking
	Selected []players.Playtime
	Shots    shots.Set
}

// Pipeline runs ResolveTeam, ResolveGames, CollectGameStats, RankPlaytime,
// TopN and FetchShotSet in order. It holds no per-run state.
type Pipeline struct {
	provider providers.StatsProvider
	roster   teams.Roster
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewPipeline wires a pipeline. A nil roster defaults to teams.NBA.
func NewPipeline(provider providers.StatsProvider, roster teams.Roster, recorder *metrics.Recorder, logger *slog.Logger) *Pipeline {
	if roster == nil {
		roster = teams.NBA
	}
	return &Pipeline{provider: provider, roster: roster, recorder: recorder, logger: logger}
}

// Roster returns the team roster the pipeline resolves against.
func (p *Pipeline) Roster() teams.Roster {
	return p.roster
}

// Validate checks every request field without touching the provider.
func (p *Pipeline) Validate(req Request) (teams.Identity, season.Season, season.Type, error) {
	s, err := season.Parse(req.Season)
	if err != nil {
		return teams.Identity{}, season.Season{}, "", err
	}
	st, err := season.ParseType(req.SeasonType)
	if err != nil {
		return teams.Identity{}, season.Season{}, "", err
	}
	if err := ValidateTopN(req.TopN); err != nil {
		return teams.Identity{}, season.Season{}, "", err
	}
	team, err := ResolveTeam(p.roster, req.Team)
	if err != nil {
		return teams.Identity{}, season.Season{}, "", err
	}
	return team, s, st, nil
}

// Rank resolves the team's games and ranks its players by average minutes.
func (p *Pipeline) Rank(ctx context.Context, req Request) (Ranking, error) {
	team, s, st, err := p.Validate(req)
	if err != nil {
		return Ranking{}, err
	}
	return p.rank(p.withLogger(ctx, team, s, st), team, s, st)
}

// Run executes the full pipeline and returns the filtered shot set.
func (p *Pipeline) Run(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	defer func() {
		p.recorder.RecordPipelineRun(time.Since(start), err)
	}()

	team, s, st, err := p.Validate(req)
	if err != nil {
		return Result{}, err
	}
	ctx = p.withLogger(ctx, team, s, st)
	logger := logging.FromContext(ctx, p.logger)

	ranking, err := p.rank(ctx, team, s, st)
	if err != nil {
		logging.Error(logger, "pipeline failed", err)
		return Result{}, err
	}
	selected, err := TopN(ranking.Players, req.TopN)
	if err != nil {
		return Result{}, err
	}
	set, err := FetchShotSet(ctx, p.provider, team, players.IDs(selected), s, st)
	if err != nil {
		logging.Error(logger, "pipeline failed", err)
		return Result{}, err
	}

	logging.Info(logger, "pipeline complete",
		slog.Int("players", len(selected)),
		slog.Int("shots", len(set)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return Result{Ranking: ranking, Selected: selected, Shots: set}, nil
}

func (p *Pipeline) rank(ctx context.Context, team teams.Identity, s season.Season, st season.Type) (Ranking, error) {
	if p.provider == nil {
		return Ranking{}, ErrNoProvider
	}
	ids, err := findGames(ctx, p.provider, team, s, st)
	if err != nil {
		return Ranking{}, err
	}
	stats, err := CollectGameStats(ctx, p.provider, team, ids)
	if err != nil {
		return Ranking{}, err
	}
	return Ranking{
		Team:       team,
		Season:     s,
		SeasonType: st,
		Games:      ids,
		Players:    RankPlaytime(stats),
	}, nil
}

func (p *Pipeline) withLogger(ctx context.Context, team teams.Identity, s season.Season, st season.Type) context.Context {
	logger := logging.FromContext(ctx, p.logger)
	if logger == nil {
		return ctx
	}
	return logging.WithLogger(ctx, logger.With(
		slog.String(logging.FieldTeam, team.Name),
		slog.String(logging.FieldSeason, s.String()),
		slog.String(logging.FieldSeasonType, st.String()),
	))
}
