package config

// Config holds runtime configuration for the CLI and server.
type Config struct {
	Port       string
	Provider   ProviderConfig
	Cache      CacheConfig
	Summary    SummaryConfig
	Metrics    MetricsConfig
	Log        LogConfig
	DefaultTop int
	CORS       []string
	// AdminToken guards the cache admin endpoints; empty disables them.
	AdminToken string
}

// LogConfig controls logger level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		Provider:   loadProvider(),
		Cache:      loadCache(),
		Summary:    loadSummary(),
		Metrics:    loadMetrics(),
		Log:        LogConfig{Level: envOrDefault(envLogLevel, "info"), Format: envOrDefault(envLogFormat, "text")},
		DefaultTop: topEnvOrDefault(envDefaultTop, defaultTopPlayers),
		CORS:       listEnvOrDefault(envCORSOrigins, []string{"*"}),
		AdminToken: envOrDefault(envAdminToken, ""),
	}
}
