package forecast

import (
	"github.com/preston-bernstein/scorigami-service/internal/config"
	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
)

// Params tunes when a forecast runs and how the remaining scoring is modeled.
type Params struct {
	MinInning         int
	BlowoutRuns       int
	RegulationInnings int
	RunsPerInning     float64
	MaxAdditionalRuns int
	Epsilon           float64
}

// DefaultParams mirrors the service defaults: 9 innings, half a run per team per inning, K=20.
func DefaultParams() Params {
	return Params{
		MinInning:         7,
		BlowoutRuns:       10,
		RegulationInnings: 9,
		RunsPerInning:     0.5,
		MaxAdditionalRuns: 20,
		Epsilon:           1e-5,
	}
}

// ParamsFromConfig converts the env-driven forecast settings.
func ParamsFromConfig(cfg config.ForecastConfig) Params {
	p := DefaultParams()
	if cfg.MinInning > 0 {
		p.MinInning = cfg.MinInning
	}
	if cfg.BlowoutRuns > 0 {
		p.BlowoutRuns = cfg.BlowoutRuns
	}
	if cfg.RegulationInnings > 0 {
		p.RegulationInnings = cfg.RegulationInnings
	}
	if cfg.RunsPerInning > 0 {
		p.RunsPerInning = cfg.RunsPerInning
	}
	if cfg.MaxAdditionalRuns > 0 {
		p.MaxAdditionalRuns = cfg.MaxAdditionalRuns
	}
	if cfg.Epsilon > 0 {
		p.Epsilon = cfg.Epsilon
	}
	return p
}

// Eligible reports whether an in-progress game is late and lopsided enough to forecast.
func (p Params) Eligible(s games.Snapshot) bool {
	if s.Status != games.StatusInProgress {
		return false
	}
	if s.Inning < p.MinInning {
		return false
	}
	return s.HomeRuns >= p.BlowoutRuns || s.AwayRuns >= p.BlowoutRuns
}

// InningsRemaining is the number of regulation innings left after inning.
func (p Params) InningsRemaining(inning int) int {
	return p.RegulationInnings - inning
}

// Lambda is the expected combined runs over the remaining innings.
func (p Params) Lambda(inningsRemaining int) float64 {
	return float64(inningsRemaining) * p.RunsPerInning * 2
}
