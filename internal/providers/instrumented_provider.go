package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
	"github.com/preston-bernstein/nba-shot-selection/internal/metrics"
)

// instrumentedProvider records latency, errors and rate limits for every upstream call.
type instrumentedProvider struct {
	inner        StatsProvider
	recorder     *metrics.Recorder
	providerName string
	logger       *slog.Logger
}

// NewInstrumentedProvider wraps inner so each call is recorded under providerName.
func NewInstrumentedProvider(inner StatsProvider, recorder *metrics.Recorder, providerName string, logger *slog.Logger) StatsProvider {
	return &instrumentedProvider{
		inner:        inner,
		recorder:     recorder,
		providerName: providerName,
		logger:       logger,
	}
}

func (p *instrumentedProvider) FindGames(ctx context.Context, teamID int, season, seasonType string) ([]games.ID, error) {
	return observe(ctx, p, OpFindGames, func() ([]games.ID, error) {
		return p.inner.FindGames(ctx, teamID, season, seasonType)
	})
}

func (p *instrumentedProvider) GameStats(ctx context.Context, teamID int, gameID games.ID) (games.Stats, error) {
	return observe(ctx, p, OpGameStats, func() (games.Stats, error) {
		return p.inner.GameStats(ctx, teamID, gameID)
	}, slog.String(logging.FieldGameID, string(gameID)))
}

func (p *instrumentedProvider) ShotEvents(ctx context.Context, teamID, playerID int, season, seasonType string) (shots.Set, error) {
	return observe(ctx, p, OpShotEvents, func() (shots.Set, error) {
		return p.inner.ShotEvents(ctx, teamID, playerID, season, seasonType)
	})
}

func (p *instrumentedProvider) LeagueBaseline(ctx context.Context, season string) ([]shots.BaselineRow, error) {
	return observe(ctx, p, OpLeagueBaseline, func() ([]shots.BaselineRow, error) {
		return p.inner.LeagueBaseline(ctx, season)
	})
}

func observe[T any](ctx context.Context, p *instrumentedProvider, op string, fn func() (T, error), attrs ...any) (T, error) {
	if p.inner == nil {
		var zero T
		return zero, ErrProviderUnavailable
	}
	start := time.Now()
	res, err := fn()
	duration := time.Since(start)

	p.recorder.RecordProviderAttempt(p.providerName, duration, err)
	if rlErr, ok := AsRateLimitError(err); ok {
		p.recorder.RecordRateLimit(p.providerName, rlErr.RetryAfter)
	}

	logger := logging.FromContext(ctx, p.logger)
	args := append([]any{"op", op, logging.FieldDurationMS, duration.Milliseconds()}, attrs...)
	if err != nil {
		args = append(args, logging.FieldError, err)
		logWithProvider(ctx, logger, slog.LevelWarn, p.providerName, "provider call failed", args...)
		return res, err
	}
	logWithProvider(ctx, logger, slog.LevelDebug, p.providerName, "provider call", args...)
	return res, nil
}
