package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-shot-selection/internal/app/comparison"
	"github.com/preston-bernstein/nba-shot-selection/internal/cache"
	"github.com/preston-bernstein/nba-shot-selection/internal/config"
	"github.com/preston-bernstein/nba-shot-selection/internal/ingest"
	"github.com/preston-bernstein/nba-shot-selection/internal/metrics"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers"
	"github.com/preston-bernstein/nba-shot-selection/internal/summary"
)

// Components is the application graph shared by the CLI and the HTTP server.
type Components struct {
	Provider   providers.StatsProvider
	Store      cache.Store
	Loader     *cache.Loader
	Pipeline   *ingest.Pipeline
	Comparison *comparison.Service
	Summarizer summary.Summarizer
	Recorder   *metrics.Recorder

	closeStore func() error
}

// Build wires provider, cache and services from cfg. A nil recorder gets an
// in-process one. Callers must Close the result.
func Build(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Components, error) {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	provider := newProviderFactory(logger, recorder).build(cfg.Provider)
	return buildWithProvider(cfg, logger, recorder, provider)
}

func buildWithProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, provider providers.StatsProvider) (*Components, error) {
	store, closeStore, err := BuildStore(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}
	loader := cache.NewLoader(store, recorder, logger)
	pipeline := ingest.NewPipeline(provider, nil, recorder, logger)
	policy := cache.Policy{MaxAge: cfg.Cache.MaxAge, RepairCorrupt: cfg.Cache.RepairCorrupt}

	return &Components{
		Provider:   provider,
		Store:      store,
		Loader:     loader,
		Pipeline:   pipeline,
		Comparison: comparison.NewService(pipeline, provider, loader, policy, logger),
		Summarizer: summary.NewOllamaClient(summary.OllamaConfig{
			BaseURL: cfg.Summary.OllamaURL,
			Model:   cfg.Summary.Model,
			Logger:  logger,
		}),
		Recorder:   recorder,
		closeStore: closeStore,
	}, nil
}

// Close releases backend connections.
func (c *Components) Close() error {
	if c == nil || c.closeStore == nil {
		return nil
	}
	return c.closeStore()
}
