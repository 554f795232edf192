package config

import "time"

const (
	envPort             = "PORT"
	envProvider         = "PROVIDER"
	envNBAStatsBaseURL  = "NBA_STATS_BASE_URL"
	envNBAStatsTimeout  = "NBA_STATS_TIMEOUT"
	envMinInterval      = "PROVIDER_MIN_INTERVAL"
	envMaxAttempts      = "PROVIDER_MAX_ATTEMPTS"
	envBreakerFailures  = "PROVIDER_BREAKER_FAILURES"
	envCacheBackend     = "CACHE_BACKEND"
	envCacheDir         = "CACHE_DIR"
	envCacheMaxAge      = "CACHE_MAX_AGE"
	envCacheRepair      = "CACHE_REPAIR_CORRUPT"
	envRedisAddr        = "REDIS_ADDR"
	envRedisPassword    = "REDIS_PASSWORD"
	envRedisDB          = "REDIS_DB"
	envDefaultTop       = "DEFAULT_TOP_PLAYERS"
	envOllamaURL        = "OLLAMA_URL"
	envOllamaModel      = "OLLAMA_MODEL"
	envCORSOrigins      = "CORS_ALLOWED_ORIGINS"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"
	envAdminToken       = "ADMIN_TOKEN"
	defaultPort         = "4000"
	defaultProvider     = "nbastats"
	defaultNBAStatsURL  = "https://stats.nba.com/stats"
	defaultNBATimeout   = 30 * time.Second
	defaultMetricsPort  = "9090"
	defaultCacheBackend = "fs"
	defaultCacheDir     = "data"
	defaultRedisAddr    = "localhost:6379"
	defaultTopPlayers   = 5
	defaultMaxAttempts  = 3
	defaultBreakerTrips = 5
	defaultOllamaURL    = "http://localhost:11434"
	defaultOllamaModel  = "llama2"
	defaultServiceName  = "nba-shot-selection"

	// Per-game stats calls are throttled upstream; 3s matches what has been safe in practice.
	defaultMinInterval = 3 * time.Second
	// Anything tighter than one call per second gets the client blocked.
	minProviderInterval = time.Second
)
