package forecast

import (
	"testing"

	"github.com/preston-bernstein/scorigami-service/internal/config"
	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
)

func TestEligible(t *testing.T) {
	p := DefaultParams()
	cases := []struct {
		name string
		snap games.Snapshot
		want bool
	}{
		{"late blowout", games.Snapshot{Status: games.StatusInProgress, Inning: 7, HomeRuns: 10}, true},
		{"visitors blowout", games.Snapshot{Status: games.StatusInProgress, Inning: 8, AwayRuns: 12}, true},
		{"too early", games.Snapshot{Status: games.StatusInProgress, Inning: 6, HomeRuns: 15}, false},
		{"close game", games.Snapshot{Status: games.StatusInProgress, Inning: 8, HomeRuns: 9, AwayRuns: 8}, false},
		{"final", games.Snapshot{Status: games.StatusFinal, Inning: 9, HomeRuns: 15}, false},
	}
	for _, tc := range cases {
		if got := p.Eligible(tc.snap); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestParamsFromConfigKeepsDefaultsForZeroValues(t *testing.T) {
	p := ParamsFromConfig(config.ForecastConfig{RunsPerInning: 0.6, MinInning: 6})
	if p.RunsPerInning != 0.6 || p.MinInning != 6 {
		t.Fatalf("expected overrides applied, got %+v", p)
	}
	if p.MaxAdditionalRuns != 20 || p.RegulationInnings != 9 || p.Epsilon != 1e-5 {
		t.Fatalf("expected defaults kept, got %+v", p)
	}
	if got := p.Lambda(2); got != 2.4 {
		t.Fatalf("expected lambda 2.4, got %v", got)
	}
}
