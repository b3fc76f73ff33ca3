package server

import (
	"log/slog"

	"github.com/preston-bernstein/scorigami-service/internal/config"
	"github.com/preston-bernstein/scorigami-service/internal/providers"
	"github.com/preston-bernstein/scorigami-service/internal/providers/fixture"
	"github.com/preston-bernstein/scorigami-service/internal/providers/statsapi"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.GameProvider {
	switch cfg.Provider {
	case "statsapi", "":
		return statsapi.NewClient(statsapi.Config{
			BaseURL:  cfg.StatsAPI.BaseURL,
			SportID:  cfg.StatsAPI.SportID,
			Timezone: cfg.StatsAPI.Timezone,
		})
	case "fixture":
		return fixture.New()
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
