package fixture

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/domain/teams"
	"github.com/preston-bernstein/scorigami-service/internal/timeutil"
)

var (
	brewers   = teams.Team{ID: 158, Name: "Milwaukee Brewers", Abbreviation: "MIL"}
	cardinals = teams.Team{ID: 138, Name: "St. Louis Cardinals", Abbreviation: "STL"}
	yankees   = teams.Team{ID: 147, Name: "New York Yankees", Abbreviation: "NYY"}
	redSox    = teams.Team{ID: 111, Name: "Boston Red Sox", Abbreviation: "BOS"}
	dodgers   = teams.Team{ID: 119, Name: "Los Angeles Dodgers", Abbreviation: "LAD"}
	giants    = teams.Team{ID: 137, Name: "San Francisco Giants", Abbreviation: "SF"}
)

// Provider returns a static slate useful for local runs: one final, one lopsided live game and one scheduled game.
// Game ids are derived from the slate date so each day produces fresh ids.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchSchedule returns a deterministic slate for the given day.
func (p *Provider) FetchSchedule(ctx context.Context, date string, tz string) ([]games.Snapshot, error) {
	_ = ctx
	_ = tz
	return p.slate(p.resolveDay(date)), nil
}

// FetchLiveGame returns the fixture game with the given id from today's slate.
func (p *Provider) FetchLiveGame(ctx context.Context, gameID int) (games.Snapshot, error) {
	_ = ctx
	day := gameID / 10
	for _, g := range p.slate(strconv.Itoa(day)) {
		if g.GameID == gameID {
			return g, nil
		}
	}
	return games.Snapshot{}, fmt.Errorf("fixture: unknown game %d", gameID)
}

func (p *Provider) resolveDay(date string) string {
	day := timeutil.ScheduleDate(date, p.now(), time.UTC)
	return strings.ReplaceAll(day, "-", "")
}

func (p *Provider) slate(day string) []games.Snapshot {
	base, _ := strconv.Atoi(day)
	base *= 10
	return []games.Snapshot{
		{
			GameID:        base + 1,
			Status:        games.StatusFinal,
			DetailedState: "Final",
			Home:          brewers,
			Away:          cardinals,
			HomeRuns:      16,
			AwayRuns:      4,
			Inning:        9,
			InningState:   "Top of the 9th",
		},
		{
			GameID:        base + 2,
			Status:        games.StatusInProgress,
			DetailedState: "In Progress",
			Home:          redSox,
			Away:          yankees,
			HomeRuns:      2,
			AwayRuns:      14,
			Inning:        8,
			InningState:   "Middle of the 8th",
		},
		{
			GameID:        base + 3,
			Status:        games.StatusScheduled,
			DetailedState: "Scheduled",
			Home:          giants,
			Away:          dodgers,
			InningState:   "Pre-Game",
		},
	}
}
