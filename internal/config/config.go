package config

// Config holds runtime configuration for the server.
type Config struct {
	Port       string
	Provider   string
	CronSecret string
	StatsAPI   StatsAPIConfig
	Database   DatabaseConfig
	Social     SocialConfig
	Engine     EngineConfig
	Metrics    MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		Provider:   envOrDefault(envProvider, defaultProvider),
		CronSecret: envOrDefault(envCronSecret, ""),
		StatsAPI:   loadStatsAPI(),
		Database:   loadDatabase(),
		Social:     loadSocial(),
		Engine:     loadEngine(),
		Metrics:    loadMetrics(),
	}
}
