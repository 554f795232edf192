package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

const (
	defaultBreakerFailures = 5
	defaultBreakerCooldown = 30 * time.Second
)

// breakerProvider fails fast once the upstream has failed several times in a row.
// Rate limits and caller cancellations do not count as failures.
type breakerProvider struct {
	inner        StatsProvider
	cb           *gobreaker.CircuitBreaker
	providerName string
}

// NewBreakerProvider wraps inner with a circuit breaker that opens after failures
// consecutive upstream errors and half-opens again after cooldown.
func NewBreakerProvider(inner StatsProvider, providerName string, failures int, cooldown time.Duration, logger *slog.Logger) StatsProvider {
	if failures <= 0 {
		failures = defaultBreakerFailures
	}
	if cooldown <= 0 {
		cooldown = defaultBreakerCooldown
	}
	threshold := uint32(failures)
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        providerName,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: countsAsHealthy,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logWithProvider(context.Background(), logger, slog.LevelWarn, name, "provider circuit breaker state changed",
				"from_state", from.String(), "to_state", to.String())
		},
	})
	return &breakerProvider{inner: inner, cb: cb, providerName: providerName}
}

func (p *breakerProvider) FindGames(ctx context.Context, teamID int, season, seasonType string) ([]games.ID, error) {
	return guard(p, func() ([]games.ID, error) {
		return p.inner.FindGames(ctx, teamID, season, seasonType)
	})
}

func (p *breakerProvider) GameStats(ctx context.Context, teamID int, gameID games.ID) (games.Stats, error) {
	return guard(p, func() (games.Stats, error) {
		return p.inner.GameStats(ctx, teamID, gameID)
	})
}

func (p *breakerProvider) ShotEvents(ctx context.Context, teamID, playerID int, season, seasonType string) (shots.Set, error) {
	return guard(p, func() (shots.Set, error) {
		return p.inner.ShotEvents(ctx, teamID, playerID, season, seasonType)
	})
}

func (p *breakerProvider) LeagueBaseline(ctx context.Context, season string) ([]shots.BaselineRow, error) {
	return guard(p, func() ([]shots.BaselineRow, error) {
		return p.inner.LeagueBaseline(ctx, season)
	})
}

func guard[T any](p *breakerProvider, fn func() (T, error)) (T, error) {
	var zero T
	if p.inner == nil {
		return zero, ErrProviderUnavailable
	}
	res, err := p.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, fmt.Errorf("%w: %s: %v", ErrProviderUnavailable, p.providerName, err)
	}
	if err != nil {
		return zero, err
	}
	out, _ := res.(T)
	return out, nil
}

func countsAsHealthy(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	_, limited := AsRateLimitError(err)
	return limited
}
