package statsapi

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/domain/teams"
)

func mapScheduleGame(g scheduleGame) games.Snapshot {
	snap := games.Snapshot{
		GameID:        g.GamePk,
		Status:        mapStatus(g.Status),
		DetailedState: g.Status.DetailedState,
		Home:          mapTeam(g.Teams.Home.Team),
		Away:          mapTeam(g.Teams.Away.Team),
		HomeRuns:      intOrZero(g.Teams.Home.Score),
		AwayRuns:      intOrZero(g.Teams.Away.Score),
		InningState:   pregameInningState,
	}
	if g.Linescore != nil {
		snap.Inning = g.Linescore.CurrentInning
		snap.InningState = inningState(*g.Linescore)
	}
	return snap
}

func mapLiveFeed(feed liveFeedResponse) games.Snapshot {
	ls := feed.LiveData.Linescore
	return games.Snapshot{
		GameID:        feed.GamePk,
		Status:        mapStatus(feed.GameData.Status),
		DetailedState: feed.GameData.Status.DetailedState,
		Home:          mapTeam(feed.GameData.Teams.Home),
		Away:          mapTeam(feed.GameData.Teams.Away),
		HomeRuns:      intOrZero(ls.Teams.Home.Runs),
		AwayRuns:      intOrZero(ls.Teams.Away.Runs),
		Inning:        ls.CurrentInning,
		InningState:   inningState(ls),
	}
}

func mapTeam(t teamPayload) teams.Team {
	return teams.Team{
		ID:           t.ID,
		Name:         t.Name,
		Abbreviation: t.Abbreviation,
	}
}

func mapStatus(s statusPayload) games.GameStatus {
	if _, ok := finalStates[s.DetailedState]; ok {
		return games.StatusFinal
	}
	detailed := strings.ToLower(s.DetailedState)
	switch {
	case strings.HasPrefix(detailed, "postponed"),
		strings.HasPrefix(detailed, "suspended"),
		strings.HasPrefix(detailed, "cancelled"):
		return games.StatusPostponed
	case strings.EqualFold(s.AbstractGameState, "Live"), detailed == "in progress":
		return games.StatusInProgress
	default:
		return games.StatusScheduled
	}
}

// inningState renders "Top of the 8th" style text, or Pre-Game before the first pitch.
func inningState(ls linescore) string {
	if ls.CurrentInningOrdinal == "" {
		return pregameInningState
	}
	return fmt.Sprintf("%s of the %s", ls.InningState, ls.CurrentInningOrdinal)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
