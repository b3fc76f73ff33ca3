package config

// DatabaseConfig points at the relational store holding history, the ledger and the queue.
type DatabaseConfig struct {
	Driver      string
	URL         string
	AutoMigrate bool
}

func loadDatabase() DatabaseConfig {
	return DatabaseConfig{
		Driver:      envOrDefault(envDatabaseDriver, defaultDatabaseDriver),
		URL:         envOrDefault(envDatabaseURL, ""),
		AutoMigrate: boolEnvOrDefault(envDatabaseAutoMigrate, false),
	}
}
