package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-shot-selection/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from the instance when not configured.
func normalizeProviderName(raw string, provider providers.StatsProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if named, ok := provider.(interface{ Name() string }); ok {
		return strings.ToLower(named.Name())
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
