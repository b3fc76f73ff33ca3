package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/scorigami-service/internal/domain/franchises"
	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/domain/teams"
	"github.com/preston-bernstein/scorigami-service/internal/forecast"
	"github.com/preston-bernstein/scorigami-service/internal/scorigami"
)

var (
	brewers   = franchises.Franchise{Code: "MIL", Name: "Milwaukee Brewers", ShortName: "Brewers", Hashtag: "#ThisIsMyCrew", Lineage: []string{"MIL", "ML4", "SE1"}, Known: true}
	cardinals = franchises.Franchise{Code: "STL", Name: "St. Louis Cardinals", ShortName: "Cardinals", Hashtag: "#ForTheLou", Lineage: []string{"SLN"}, Known: true}
)

type lookup map[string]franchises.Franchise

func (l lookup) ByLineageCode(code string) (franchises.Franchise, bool) {
	f, ok := l[code]
	return f, ok
}

func snapshot(home, away int) games.Snapshot {
	return games.Snapshot{
		GameID:      745001,
		Status:      games.StatusFinal,
		Home:        teams.Team{ID: 158, Name: "Milwaukee Brewers"},
		Away:        teams.Team{ID: 138, Name: "St. Louis Cardinals"},
		HomeRuns:    home,
		AwayRuns:    away,
		Inning:      9,
		InningState: "Bottom of the 8th",
	}
}

func TestFinalHeaderListsWinnerFirst(t *testing.T) {
	if got := FinalHeader(snapshot(16, 4)); got != "Milwaukee Brewers 16 - 4 St. Louis Cardinals\nFinal" {
		t.Fatalf("unexpected home-win header %q", got)
	}
	if got := FinalHeader(snapshot(2, 13)); got != "St. Louis Cardinals 13 - 2 Milwaukee Brewers\nFinal" {
		t.Fatalf("unexpected road-win header %q", got)
	}
}

func TestTrueUniqueMessage(t *testing.T) {
	c := NewComposer(false, nil)
	text, ok := c.Final(snapshot(13, 2), scorigami.Classification{Kind: scorigami.KindTrueUnique, Ordinal: 1_234})
	if !ok {
		t.Fatalf("expected a post")
	}
	want := "Milwaukee Brewers 13 - 2 St. Louis Cardinals\nFinal\n\nThat's a TRUE Scorigami! It's the 1,234th unique final score in MLB history."
	if text != want {
		t.Fatalf("unexpected text:\n%s", text)
	}
}

func TestFranchiseUniqueNamesOnlyTheNewFranchise(t *testing.T) {
	c := NewComposer(false, nil)
	cl := scorigami.Classification{
		Kind: scorigami.KindFranchiseUnique,
		Home: brewers,
		Away: cardinals,
		Franchises: []scorigami.FranchiseHit{
			{Franchise: cardinals, Key: games.OrientedKey{For: 3, Against: 4}, Ordinal: 411},
		},
		History:    games.HistoricalRecord{Occurrences: 9_876, LastDate: time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)},
		HasHistory: true,
	}
	text, ok := c.Final(snapshot(4, 3), cl)
	if !ok {
		t.Fatalf("expected a post")
	}
	if !strings.Contains(text, "It's the 411th unique final score in St. Louis Cardinals franchise history.") {
		t.Fatalf("expected Cardinals sentence, got:\n%s", text)
	}
	if strings.Contains(text, "Milwaukee Brewers franchise") {
		t.Fatalf("Brewers must not be named as a franchise scorigami:\n%s", text)
	}
	if !strings.HasSuffix(text, "This score has happened 9,876 times in MLB history, most recently on June 3, 2024.") {
		t.Fatalf("unexpected footer:\n%s", text)
	}
}

func TestFranchiseUniqueWithoutHistoryUsesUnknownDate(t *testing.T) {
	c := NewComposer(false, nil)
	cl := scorigami.Classification{
		Kind:       scorigami.KindFranchiseUnique,
		Franchises: []scorigami.FranchiseHit{{Franchise: brewers}},
	}
	text, _ := c.Final(snapshot(19, 2), cl)
	if !strings.Contains(text, "It's a new final score in Milwaukee Brewers franchise history.") {
		t.Fatalf("expected ordinal-free sentence, got:\n%s", text)
	}
	if !strings.Contains(text, "most recently on an unknown date.") {
		t.Fatalf("expected unknown date, got:\n%s", text)
	}
}

func TestNotUniqueMessageNamesLastParticipants(t *testing.T) {
	c := NewComposer(false, lookup{"SE1": brewers, "BOS": {Name: "Boston Red Sox", ShortName: "Red Sox"}})
	cl := scorigami.Classification{
		Kind: scorigami.KindNotUnique,
		History: games.HistoricalRecord{
			Occurrences: 1,
			LastDate:    time.Date(1969, time.June, 2, 0, 0, 0, 0, time.UTC),
			LastHome:    "BOS",
			LastVisitor: "SE1",
		},
		HasHistory: true,
	}
	text, ok := c.Final(snapshot(4, 3), cl)
	if !ok {
		t.Fatalf("expected a post")
	}
	want := "No Scorigami. That score has happened 1 time before in MLB history, most recently on June 2, 1969 (Brewers at Red Sox)."
	if !strings.HasSuffix(text, want) {
		t.Fatalf("unexpected text:\n%s", text)
	}
}

func TestNoHistoryProducesNoPost(t *testing.T) {
	c := NewComposer(true, nil)
	if text, ok := c.Final(snapshot(4, 3), scorigami.Classification{Kind: scorigami.KindNoHistory}); ok || text != "" {
		t.Fatalf("expected no post, got %q", text)
	}
}

func TestTieMessage(t *testing.T) {
	c := NewComposer(false, nil)
	text, _ := c.Final(snapshot(5, 5), scorigami.Classification{Kind: scorigami.KindTie, History: games.HistoricalRecord{Occurrences: 81}})
	want := "St. Louis Cardinals 5 - 5 Milwaukee Brewers\nFinal\n\nA tie! Final scores of 5-5 have happened 81 times in MLB history."
	if text != want {
		t.Fatalf("unexpected text:\n%s", text)
	}
}

func TestHashtagsAppendedVisitorsFirst(t *testing.T) {
	c := NewComposer(true, nil)
	text, _ := c.Final(snapshot(13, 2), scorigami.Classification{Kind: scorigami.KindTrueUnique, Ordinal: 2, Home: brewers, Away: cardinals})
	if !strings.HasSuffix(text, "\n\n#ForTheLou #ThisIsMyCrew #Scorigami") {
		t.Fatalf("unexpected hashtags:\n%s", text)
	}
}

func TestForecastMessage(t *testing.T) {
	c := NewComposer(false, nil)
	snap := snapshot(16, 4)
	snap.Status = games.StatusInProgress
	snap.InningState = "Middle of the 8th"
	res := &forecast.Result{
		TotalChance: 0.1234,
		MostLikely:  &forecast.Outcome{Side: forecast.SideHome, Team: brewers, Score: games.OrientedKey{For: 17, Against: 4}, Probability: 0.05},
	}
	text, ok := c.Forecast(snap, brewers, cardinals, res)
	if !ok {
		t.Fatalf("expected a post")
	}
	want := "St. Louis Cardinals 4 - 16 Milwaukee Brewers\nMiddle of the 8th\n\nFRANCHISE SCORIGAMI WATCH\nThere's a 12.3% chance this game ends in a franchise scorigami for either club. Most likely: Brewers 17-4."
	if text != want {
		t.Fatalf("unexpected text:\n%s", text)
	}
	if _, ok := c.Forecast(snap, brewers, cardinals, nil); ok {
		t.Fatalf("expected no post for nil forecast")
	}
}

func TestForecastMessageWithTinyChance(t *testing.T) {
	c := NewComposer(false, nil)
	snap := snapshot(16, 4)
	snap.Status = games.StatusInProgress
	snap.InningState = "Top of the 9th"

	text, ok := c.Forecast(snap, brewers, cardinals, &forecast.Result{TotalChance: 0.0002})
	if !ok {
		t.Fatalf("expected a post")
	}
	if !strings.Contains(text, "There's a <0.1% chance this game ends") {
		t.Fatalf("expected small chance rendered as <0.1%%, got:\n%s", text)
	}
}
