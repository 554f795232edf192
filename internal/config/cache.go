package config

import "time"

// CacheConfig selects the cache backend and its staleness policy.
type CacheConfig struct {
	Backend       string
	Dir           string
	MaxAge        time.Duration // zero keeps entries until deleted
	RepairCorrupt bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func loadCache() CacheConfig {
	return CacheConfig{
		Backend:       envOrDefault(envCacheBackend, defaultCacheBackend),
		Dir:           envOrDefault(envCacheDir, defaultCacheDir),
		MaxAge:        durationEnvOrDefault(envCacheMaxAge, 0),
		RepairCorrupt: boolEnvOrDefault(envCacheRepair, true),
		RedisAddr:     envOrDefault(envRedisAddr, defaultRedisAddr),
		RedisPassword: envOrDefault(envRedisPassword, ""),
		RedisDB:       nonNegativeIntEnvOrDefault(envRedisDB, 0),
	}
}
