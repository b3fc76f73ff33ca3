package config

// EngineConfig holds the detection and forecast thresholds.
type EngineConfig struct {
	MinCombinedRuns int
	Forecast        ForecastConfig
	History         HistoryConfig
	FranchiseFile   string
}

// ForecastConfig tunes the in-progress Poisson forecaster.
type ForecastConfig struct {
	MinInning         int
	BlowoutRuns       int
	RunsPerInning     float64
	MaxAdditionalRuns int
	Epsilon           float64
	RegulationInnings int
}

// HistoryConfig is the era filter applied to every historical lookup.
type HistoryConfig struct {
	ExcludeNegroLeagues bool
	FromYear            int
}

func loadEngine() EngineConfig {
	return EngineConfig{
		MinCombinedRuns: nonNegativeIntEnvOrDefault(envMinCombinedRun, defaultMinCombinedRuns),
		Forecast: ForecastConfig{
			MinInning:         intEnvOrDefault(envForecastMinInning, defaultForecastMinInn),
			BlowoutRuns:       intEnvOrDefault(envForecastBlowoutRuns, defaultForecastBlowout),
			RunsPerInning:     floatEnvOrDefault(envForecastRunsPerInning, defaultForecastRPI),
			MaxAdditionalRuns: intEnvOrDefault(envForecastMaxRuns, defaultForecastMaxRuns),
			Epsilon:           floatEnvOrDefault(envForecastEpsilon, defaultForecastEpsilon),
			RegulationInnings: intEnvOrDefault(envForecastRegulation, defaultRegulationInning),
		},
		History: HistoryConfig{
			ExcludeNegroLeagues: boolEnvOrDefault(envHistoryExcludeNegro, false),
			FromYear:            nonNegativeIntEnvOrDefault(envHistoryFromYear, 0),
		},
		FranchiseFile: envOrDefault(envFranchiseFile, ""),
	}
}
