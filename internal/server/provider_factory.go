package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-shot-selection/internal/config"
	"github.com/preston-bernstein/nba-shot-selection/internal/metrics"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers/fixture"
)

// providerFactory assembles the provider with the shared wrappers.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns retrying(paced(breaker(instrumented(base)))). The fixture
// provider is local and skips pacing.
func (f providerFactory) build(cfg config.ProviderConfig) providers.StatsProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

func (f providerFactory) wrap(cfg config.ProviderConfig, base providers.StatsProvider) providers.StatsProvider {
	name := normalizeProviderName(cfg.Name, base)
	var p providers.StatsProvider = providers.NewInstrumentedProvider(base, f.metrics, name, f.logger)
	p = providers.NewBreakerProvider(p, name, cfg.BreakerFailures, 0, f.logger)
	if _, local := base.(*fixture.Provider); !local {
		p = providers.NewPacedProvider(p, cfg.MinInterval, f.logger)
	}
	return providers.NewRetryingProvider(p, f.logger, name, cfg.MaxAttempts, 0)
}
