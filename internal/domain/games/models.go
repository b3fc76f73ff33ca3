package games

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/scorigami-service/internal/domain/teams"
)

// GameStatus is the normalized lifecycle state of a game.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
)

// Snapshot is a point-in-time view of one game as reported by the provider.
// It is rebuilt on every poll and never persisted.
type Snapshot struct {
	GameID        int        `json:"gameId"`
	Status        GameStatus `json:"status"`
	DetailedState string     `json:"detailedState"`
	Home          teams.Team `json:"home"`
	Away          teams.Team `json:"away"`
	HomeRuns      int        `json:"homeRuns"`
	AwayRuns      int        `json:"awayRuns"`
	Inning        int        `json:"inning"`
	InningState   string     `json:"inningState"`
}

// IsFinal reports whether the game has ended.
func (s Snapshot) IsFinal() bool {
	return s.Status == StatusFinal
}

// IsTie reports whether both sides have the same number of runs.
func (s Snapshot) IsTie() bool {
	return s.HomeRuns == s.AwayRuns
}

// CombinedRuns is the total runs scored by both sides.
func (s Snapshot) CombinedRuns() int {
	return s.HomeRuns + s.AwayRuns
}

// Score renders the score as "away-home", used as the ledger snapshot.
func (s Snapshot) Score() string {
	return fmt.Sprintf("%d-%d", s.AwayRuns, s.HomeRuns)
}

// Key returns the traditional (winner, loser) form of the final score.
func (s Snapshot) Key() ScoreKey {
	return NewScoreKey(s.HomeRuns, s.AwayRuns)
}

// HomeKey is the score oriented from the home side.
func (s Snapshot) HomeKey() OrientedKey {
	return OrientedKey{For: s.HomeRuns, Against: s.AwayRuns}
}

// AwayKey is the score oriented from the visiting side.
func (s Snapshot) AwayKey() OrientedKey {
	return OrientedKey{For: s.AwayRuns, Against: s.HomeRuns}
}

// ScoreKey is the traditional form of a score: Winner >= Loser.
type ScoreKey struct {
	Winner int `json:"winner"`
	Loser  int `json:"loser"`
}

// NewScoreKey orders two run totals into traditional form.
func NewScoreKey(a, b int) ScoreKey {
	if a < b {
		a, b = b, a
	}
	return ScoreKey{Winner: a, Loser: b}
}

func (k ScoreKey) String() string {
	return fmt.Sprintf("%d-%d", k.Winner, k.Loser)
}

// Valid reports whether both sides are non-negative and correctly ordered.
func (k ScoreKey) Valid() bool {
	return k.Loser >= 0 && k.Winner >= k.Loser
}

// OrientedKey is a score seen from one team: runs it scored and runs it allowed.
type OrientedKey struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

func (k OrientedKey) String() string {
	return fmt.Sprintf("%d-%d", k.For, k.Against)
}

// Traditional drops the orientation.
func (k OrientedKey) Traditional() ScoreKey {
	return NewScoreKey(k.For, k.Against)
}

// HistoricalRecord aggregates what history knows about a traditional score.
type HistoricalRecord struct {
	Key         ScoreKey  `json:"key"`
	Occurrences int       `json:"occurrences"`
	LastDate    time.Time `json:"lastDate"`
	LastHome    string    `json:"lastHome,omitempty"`
	LastVisitor string    `json:"lastVisitor,omitempty"`
}

// HasLastDate reports whether the most recent occurrence carries a usable date.
func (r HistoricalRecord) HasLastDate() bool {
	return !r.LastDate.IsZero()
}
