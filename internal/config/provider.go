package config

import "time"

// ProviderConfig controls how the upstream stats provider is reached and paced.
type ProviderConfig struct {
	Name            string
	BaseURL         string
	Timeout         time.Duration
	MinInterval     time.Duration
	MaxAttempts     int
	BreakerFailures int
}

func loadProvider() ProviderConfig {
	interval := durationEnvOrDefault(envMinInterval, defaultMinInterval)
	if interval < minProviderInterval {
		interval = minProviderInterval
	}
	return ProviderConfig{
		Name:            envOrDefault(envProvider, defaultProvider),
		BaseURL:         envOrDefault(envNBAStatsBaseURL, defaultNBAStatsURL),
		Timeout:         durationEnvOrDefault(envNBAStatsTimeout, defaultNBATimeout),
		MinInterval:     interval,
		MaxAttempts:     intEnvOrDefault(envMaxAttempts, defaultMaxAttempts),
		BreakerFailures: intEnvOrDefault(envBreakerFailures, defaultBreakerTrips),
	}
}
