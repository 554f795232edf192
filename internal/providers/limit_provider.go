package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

// DefaultPaceInterval is the gap applied between upstream calls when none is configured.
const DefaultPaceInterval = 3 * time.Second

// pacedProvider wraps a StatsProvider and enforces a minimum interval between calls.
// Every method shares one limiter, so interleaved operations are spaced too.
type pacedProvider struct {
	next     StatsProvider
	limiter  *rate.Limiter
	interval time.Duration
	logger   *slog.Logger
}

// NewPacedProvider returns a StatsProvider that spaces successive calls at least
// interval apart. The first call goes through immediately; later calls block until
// the interval has elapsed or ctx is done.
func NewPacedProvider(next StatsProvider, interval time.Duration, logger *slog.Logger) StatsProvider {
	if interval <= 0 {
		interval = DefaultPaceInterval
	}
	return &pacedProvider{
		next:     next,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
		logger:   logger,
	}
}

func (p *pacedProvider) FindGames(ctx context.Context, teamID int, season, seasonType string) ([]games.ID, error) {
	if err := p.wait(ctx, OpFindGames); err != nil {
		return nil, err
	}
	return p.next.FindGames(ctx, teamID, season, seasonType)
}

func (p *pacedProvider) GameStats(ctx context.Context, teamID int, gameID games.ID) (games.Stats, error) {
	if err := p.wait(ctx, OpGameStats); err != nil {
		return games.Stats{}, err
	}
	return p.next.GameStats(ctx, teamID, gameID)
}

func (p *pacedProvider) ShotEvents(ctx context.Context, teamID, playerID int, season, seasonType string) (shots.Set, error) {
	if err := p.wait(ctx, OpShotEvents); err != nil {
		return nil, err
	}
	return p.next.ShotEvents(ctx, teamID, playerID, season, seasonType)
}

func (p *pacedProvider) LeagueBaseline(ctx context.Context, season string) ([]shots.BaselineRow, error) {
	if err := p.wait(ctx, OpLeagueBaseline); err != nil {
		return nil, err
	}
	return p.next.LeagueBaseline(ctx, season)
}

func (p *pacedProvider) wait(ctx context.Context, op string) error {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "paced", "provider unavailable")
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "paced", "paced call canceled", "op", op, "err", err)
		return err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "paced", "paced provider call", "op", op, "interval_ms", p.interval.Milliseconds())
	return nil
}
