package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
)

const (
	winnerExpr = "CASE WHEN home_score >= visitor_score THEN home_score ELSE visitor_score END"
	loserExpr  = "CASE WHEN home_score >= visitor_score THEN visitor_score ELSE home_score END"

	matchesTraditional = "(home_score = ? AND visitor_score = ?) OR (home_score = ? AND visitor_score = ?)"
	playedByLineage    = "home_team IN ? OR visitor_team IN ?"
)

// EraFilter narrows which historical games count.
// The zero value includes every game on record.
type EraFilter struct {
	ExcludeNegroLeagues bool
	FromYear            int
}

// HistoryReader answers score-frequency questions against the game log.
type HistoryReader struct {
	db     *gorm.DB
	filter EraFilter
}

// NewHistoryReader builds a reader that applies filter to every query.
func NewHistoryReader(db *gorm.DB, filter EraFilter) *HistoryReader {
	return &HistoryReader{db: db, filter: filter}
}

func (h *HistoryReader) scoped(ctx context.Context) *gorm.DB {
	q := h.db.WithContext(ctx).Model(&GameLogModel{})
	if h.filter.ExcludeNegroLeagues {
		q = q.Where("is_negro_league = ?", false)
	}
	if h.filter.FromYear > 0 {
		q = q.Where("date >= ?", time.Date(h.filter.FromYear, time.January, 1, 0, 0, 0, 0, time.UTC))
	}
	return q
}

// HasOccurredLeagueWide reports whether the traditional score was ever recorded.
// When it was not, the second value is the distinct-score count including this new one.
func (h *HistoryReader) HasOccurredLeagueWide(ctx context.Context, key games.ScoreKey) (bool, int, error) {
	var ids []int64
	if err := h.scoped(ctx).
		Where(matchesTraditional, key.Winner, key.Loser, key.Loser, key.Winner).
		Limit(1).
		Pluck("game_id", &ids).Error; err != nil {
		return false, 0, errors.Wrap(err, "failed to check league-wide score")
	}
	if len(ids) > 0 {
		return true, 0, nil
	}

	distinct := h.scoped(ctx).Select("DISTINCT " + winnerExpr + " AS winner, " + loserExpr + " AS loser")
	var count int64
	if err := h.db.WithContext(ctx).Table("(?) AS scores", distinct).Count(&count).Error; err != nil {
		return false, 0, errors.Wrap(err, "failed to count distinct scores")
	}
	return false, int(count) + 1, nil
}

// HasOccurredForFranchise reports whether any team code in lineage ever played a game that ended
// with the same pair of scores, at home or on the road and whichever side won.
// A 3-4 loss means a later 4-3 win is not new for that franchise.
func (h *HistoryReader) HasOccurredForFranchise(ctx context.Context, lineage []string, key games.OrientedKey) (bool, error) {
	if len(lineage) == 0 {
		return false, ErrNoLineage
	}
	var ids []int64
	if err := h.scoped(ctx).
		Where(playedByLineage, lineage, lineage).
		Where(matchesTraditional, key.For, key.Against, key.Against, key.For).
		Limit(1).
		Pluck("game_id", &ids).Error; err != nil {
		return false, errors.Wrap(err, "failed to check franchise score")
	}
	return len(ids) > 0, nil
}

// FranchiseDistinctCount is the number of distinct winner-loser final scores in games the franchise played.
func (h *HistoryReader) FranchiseDistinctCount(ctx context.Context, lineage []string) (int, error) {
	if len(lineage) == 0 {
		return 0, ErrNoLineage
	}
	distinct := h.scoped(ctx).
		Select("DISTINCT "+winnerExpr+" AS winner, "+loserExpr+" AS loser").
		Where(playedByLineage, lineage, lineage)

	var count int64
	if err := h.db.WithContext(ctx).Table("(?) AS scores", distinct).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count franchise scores")
	}
	return int(count), nil
}

// GetFrequency aggregates every occurrence of the traditional score in either orientation.
// It returns ErrNotFound when the score was never recorded.
func (h *HistoryReader) GetFrequency(ctx context.Context, key games.ScoreKey) (games.HistoricalRecord, error) {
	var count int64
	if err := h.scoped(ctx).
		Where(matchesTraditional, key.Winner, key.Loser, key.Loser, key.Winner).
		Count(&count).Error; err != nil {
		return games.HistoricalRecord{}, errors.Wrap(err, "failed to count score occurrences")
	}
	if count == 0 {
		return games.HistoricalRecord{}, ErrNotFound
	}

	var last GameLogModel
	if err := h.scoped(ctx).
		Where(matchesTraditional, key.Winner, key.Loser, key.Loser, key.Winner).
		Order("date DESC").
		Order("game_id DESC").
		Limit(1).
		Find(&last).Error; err != nil {
		return games.HistoricalRecord{}, errors.Wrap(err, "failed to find most recent occurrence")
	}

	return games.HistoricalRecord{
		Key:         key,
		Occurrences: int(count),
		LastDate:    last.Date,
		LastHome:    last.HomeTeam,
		LastVisitor: last.VisitorTeam,
	}, nil
}
