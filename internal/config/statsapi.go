package config

import "time"

// StatsAPIConfig controls how we talk to the MLB Stats API.
type StatsAPIConfig struct {
	BaseURL     string
	SportID     int
	Timezone    string
	MinInterval time.Duration
}

func loadStatsAPI() StatsAPIConfig {
	return StatsAPIConfig{
		BaseURL:     envOrDefault(envStatsAPIBaseURL, defaultStatsAPIBaseURL),
		SportID:     intEnvOrDefault(envStatsAPISportID, defaultStatsAPISportID),
		Timezone:    envOrDefault(envStatsAPITimezone, defaultStatsAPITimezone),
		MinInterval: durationEnvOrDefault(envProviderMinInterval, defaultProviderMinInterval),
	}
}
