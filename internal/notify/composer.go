package notify

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/scorigami-service/internal/domain/franchises"
	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/forecast"
	"github.com/preston-bernstein/scorigami-service/internal/scorigami"
)

const scorigamiTag = "#Scorigami"

// LineageLookup names the franchise behind a historical team code.
type LineageLookup interface {
	ByLineageCode(code string) (franchises.Franchise, bool)
}

// Composer turns classifications and forecasts into post text. It performs no I/O.
type Composer struct {
	hashtags bool
	lookup   LineageLookup
}

// NewComposer builds a Composer. lookup may be nil, in which case raw team codes are printed.
func NewComposer(hashtags bool, lookup LineageLookup) *Composer {
	return &Composer{hashtags: hashtags, lookup: lookup}
}

// Final composes the announcement for a completed game.
// It returns false when the classification warrants no post.
func (c *Composer) Final(snap games.Snapshot, cl scorigami.Classification) (string, bool) {
	var body string
	switch cl.Kind {
	case scorigami.KindTie:
		body = fmt.Sprintf("A tie! Final scores of %d-%d have happened %s in MLB history.",
			snap.HomeRuns, snap.AwayRuns, Times(cl.History.Occurrences))
	case scorigami.KindTrueUnique:
		body = fmt.Sprintf("That's a TRUE Scorigami! It's the %s unique final score in MLB history.", Ordinal(cl.Ordinal))
	case scorigami.KindFranchiseUnique:
		lines := make([]string, 0, len(cl.Franchises)+1)
		for _, hit := range cl.Franchises {
			lines = append(lines, franchiseLine(hit))
		}
		lines = append(lines, fmt.Sprintf("This score has happened %s in MLB history, most recently on %s.",
			Times(cl.History.Occurrences), FormatDate(cl.History.LastDate)))
		body = strings.Join(lines, "\n")
	case scorigami.KindNotUnique:
		body = fmt.Sprintf("No Scorigami. That score has happened %s before in MLB history, most recently on %s%s.",
			Times(cl.History.Occurrences), FormatDate(cl.History.LastDate), c.participants(cl.History))
	default:
		return "", false
	}
	return fit(FinalHeader(snap)+"\n\n"+body, c.tags(cl.Away, cl.Home)), true
}

// Forecast composes the in-progress watch post. A nil result yields no post.
func (c *Composer) Forecast(snap games.Snapshot, home, away franchises.Franchise, r *forecast.Result) (string, bool) {
	if r == nil || r.TotalChance <= 0 {
		return "", false
	}
	body := fmt.Sprintf("FRANCHISE SCORIGAMI WATCH\nThere's a %s chance this game ends in a franchise scorigami for either club.", Percent(r.TotalChance))
	if r.MostLikely != nil {
		body += fmt.Sprintf(" Most likely: %s %s.", r.MostLikely.Team.DisplayShort(), r.MostLikely.Score)
	}
	return fit(LiveHeader(snap)+"\n\n"+body, c.tags(away, home)), true
}

// FinalHeader lists the winner first; ties keep the visitors first.
func FinalHeader(snap games.Snapshot) string {
	if snap.HomeRuns > snap.AwayRuns {
		return fmt.Sprintf("%s %d - %d %s\nFinal", snap.Home.Name, snap.HomeRuns, snap.AwayRuns, snap.Away.Name)
	}
	return fmt.Sprintf("%s %d - %d %s\nFinal", snap.Away.Name, snap.AwayRuns, snap.HomeRuns, snap.Home.Name)
}

// LiveHeader lists the visitors first followed by the inning state.
func LiveHeader(snap games.Snapshot) string {
	return fmt.Sprintf("%s %d - %d %s\n%s", snap.Away.Name, snap.AwayRuns, snap.HomeRuns, snap.Home.Name, snap.InningState)
}

func franchiseLine(hit scorigami.FranchiseHit) string {
	if hit.Ordinal <= 0 {
		return fmt.Sprintf("That's a FRANCHISE Scorigami! It's a new final score in %s franchise history.", hit.Franchise.Name)
	}
	return fmt.Sprintf("That's a FRANCHISE Scorigami! It's the %s unique final score in %s franchise history.",
		Ordinal(hit.Ordinal), hit.Franchise.Name)
}

func (c *Composer) participants(rec games.HistoricalRecord) string {
	if rec.LastHome == "" || rec.LastVisitor == "" {
		return ""
	}
	return fmt.Sprintf(" (%s at %s)", c.teamName(rec.LastVisitor), c.teamName(rec.LastHome))
}

func (c *Composer) teamName(code string) string {
	if c.lookup != nil {
		if f, ok := c.lookup.ByLineageCode(code); ok {
			return f.DisplayShort()
		}
	}
	return code
}

func (c *Composer) tags(teams ...franchises.Franchise) []string {
	if !c.hashtags {
		return nil
	}
	var out []string
	for _, f := range teams {
		if f.Hashtag != "" {
			out = append(out, f.Hashtag)
		}
	}
	return append(out, scorigamiTag)
}
