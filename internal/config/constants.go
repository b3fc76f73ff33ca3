package config

import "time"

const (
	envPort       = "PORT"
	envProvider   = "PROVIDER"
	envCronSecret = "CRON_SECRET"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envStatsAPIBaseURL     = "STATSAPI_BASE_URL"
	envStatsAPISportID     = "STATSAPI_SPORT_ID"
	envStatsAPITimezone    = "STATSAPI_TIMEZONE"
	envProviderMinInterval = "PROVIDER_MIN_INTERVAL"

	envDatabaseDriver      = "DATABASE_DRIVER"
	envDatabaseURL         = "DATABASE_URL"
	envDatabaseAutoMigrate = "DATABASE_AUTO_MIGRATE"

	envEnablePosting  = "ENABLE_POSTING"
	envXAppKey        = "X_APP_KEY"
	envXAppSecret     = "X_APP_SECRET"
	envXAccessToken   = "X_ACCESS_TOKEN"
	envXAccessSecret  = "X_ACCESS_SECRET"
	envXBaseURL       = "X_BASE_URL"
	envHashtagsOn     = "HASHTAGS_ENABLED"
	envQueueExpiry    = "QUEUE_EXPIRY"
	envMinCombinedRun = "MIN_COMBINED_RUNS"

	envForecastMinInning     = "FORECAST_MIN_INNING"
	envForecastBlowoutRuns   = "FORECAST_BLOWOUT_RUNS"
	envForecastRunsPerInning = "FORECAST_RUNS_PER_INNING"
	envForecastMaxRuns       = "FORECAST_MAX_RUNS"
	envForecastEpsilon       = "FORECAST_EPSILON"
	envForecastRegulation    = "FORECAST_REGULATION_INNINGS"

	envHistoryExcludeNegro = "HISTORY_EXCLUDE_NEGRO_LEAGUES"
	envHistoryFromYear     = "HISTORY_FROM_YEAR"
	envFranchiseFile       = "FRANCHISE_FILE"

	defaultPort        = "4000"
	defaultProvider    = "statsapi"
	defaultMetricsPort = "9090"

	defaultStatsAPIBaseURL  = "https://statsapi.mlb.com"
	defaultStatsAPISportID  = 1
	defaultStatsAPITimezone = "America/New_York"
	// statsapi has no published quota; spacing keeps a full slate of live-feed lookups polite.
	defaultProviderMinInterval = 250 * time.Millisecond

	defaultDatabaseDriver = "postgres"

	defaultXBaseURL = "https://api.twitter.com"

	defaultQueueExpiry      = 2 * time.Hour
	defaultMinCombinedRuns  = 3
	defaultForecastMinInn   = 7
	defaultForecastBlowout  = 10
	defaultForecastRPI      = 0.5
	defaultForecastMaxRuns  = 20
	defaultForecastEpsilon  = 1e-5
	defaultRegulationInning = 9
)
