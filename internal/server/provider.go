package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-shot-selection/internal/config"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers/fixture"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers/nbastats"
)

func selectProvider(cfg config.ProviderConfig, logger *slog.Logger) providers.StatsProvider {
	switch cfg.Name {
	case "fixture":
		return fixture.New()
	case "nbastats", "":
		return nbastats.NewClient(nbastats.Config{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Name))
		}
		return fixture.New()
	}
}
