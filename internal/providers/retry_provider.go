package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 500 * time.Millisecond
	maxBackoff           = 30 * time.Second
)

// retryingProvider retries calls that the upstream rejected with a rate limit.
// Any other error is returned on the first attempt.
type retryingProvider struct {
	inner        StatsProvider
	logger       *slog.Logger
	providerName string
	maxAttempts  int
	backoff      time.Duration
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner StatsProvider, logger *slog.Logger, providerName string, maxAttempts int, backoff time.Duration) StatsProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		backoff:      backoff,
	}
}

func (r *retryingProvider) FindGames(ctx context.Context, teamID int, season, seasonType string) ([]games.ID, error) {
	return retry(ctx, r, OpFindGames, func(ctx context.Context) ([]games.ID, error) {
		return r.inner.FindGames(ctx, teamID, season, seasonType)
	})
}

func (r *retryingProvider) GameStats(ctx context.Context, teamID int, gameID games.ID) (games.Stats, error) {
	return retry(ctx, r, OpGameStats, func(ctx context.Context) (games.Stats, error) {
		return r.inner.GameStats(ctx, teamID, gameID)
	})
}

func (r *retryingProvider) ShotEvents(ctx context.Context, teamID, playerID int, season, seasonType string) (shots.Set, error) {
	return retry(ctx, r, OpShotEvents, func(ctx context.Context) (shots.Set, error) {
		return r.inner.ShotEvents(ctx, teamID, playerID, season, seasonType)
	})
}

func (r *retryingProvider) LeagueBaseline(ctx context.Context, season string) ([]shots.BaselineRow, error) {
	return retry(ctx, r, OpLeagueBaseline, func(ctx context.Context) ([]shots.BaselineRow, error) {
		return r.inner.LeagueBaseline(ctx, season)
	})
}

func retry[T any](ctx context.Context, r *retryingProvider, op string, fn func(context.Context) (T, error)) (T, error) {
	var (
		out     T
		attempt int
	)
	if r.inner == nil {
		return out, ErrProviderUnavailable
	}

	policy := &retryAfterBackOff{next: r.newBackOff()}
	operation := func() error {
		attempt++
		res, err := fn(ctx)
		if err == nil {
			out = res
			return nil
		}
		rlErr, ok := AsRateLimitError(err)
		if !ok {
			return backoff.Permanent(err)
		}
		policy.hint = rlErr.RetryAfter
		return err
	}
	notify := func(err error, delay time.Duration) {
		r.logWarn(ctx, "provider rate limited, retrying",
			"op", op, "attempt", attempt, "max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(), "err", err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		if _, ok := AsRateLimitError(err); ok {
			r.logWarn(ctx, "provider retries exhausted", "op", op, "attempts", attempt, "err", err)
		}
		var zero T
		return zero, err
	}
	return out, nil
}

func (r *retryingProvider) newBackOff() backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.backoff
	eb.MaxInterval = maxBackoff
	eb.MaxElapsedTime = 0
	eb.Reset()
	return eb
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	logWithProvider(ctx, logger, slog.LevelWarn, r.providerName, msg, args...)
}

// retryAfterBackOff prefers an upstream Retry-After hint over the computed delay.
type retryAfterBackOff struct {
	next backoff.BackOff
	hint time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	computed := b.next.NextBackOff()
	if computed == backoff.Stop {
		return backoff.Stop
	}
	if b.hint > 0 {
		hint := b.hint
		b.hint = 0
		return hint
	}
	return computed
}

func (b *retryAfterBackOff) Reset() {
	b.hint = 0
	b.next.Reset()
}
