package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Kind is the action recorded for a (game, detail) pair.
type Kind string

const (
	KindReserved       Kind = "Reserved"
	KindQueued         Kind = "Queued"
	KindFinal          Kind = "Final"
	KindFinalFromQueue Kind = "Final_From_Queue"
	KindNoPost         Kind = "Processed_No_Post"
	KindLowValue       Kind = "Skipped_Low_Value"
	KindStale          Kind = "Skipped_Stale_Queue"
	KindForecast       Kind = "Forecast"
)

// DetailFinal is the ledger detail for a game's final-score decision.
const DetailFinal = "Final"

const forecastDetailPrefix = "Forecast Inning "

// ForecastDetail is the ledger detail for a forecast sent during an inning.
func ForecastDetail(inning int) string {
	return fmt.Sprintf("%s%d", forecastDetailPrefix, inning)
}

// IsForecastDetail reports whether detail belongs to a forecast decision.
func IsForecastDetail(detail string) bool {
	return len(detail) > len(forecastDetailPrefix) && detail[:len(forecastDetailPrefix)] == forecastDetailPrefix
}

// IdempotencyRecord is one decision held in the ledger.
type IdempotencyRecord struct {
	GameID    int
	Detail    string
	Kind      Kind
	Score     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ledger records per-game decisions so repeated runs never act twice.
type Ledger struct {
	db *gorm.DB
}

// NewLedger builds a ledger over the posted_updates table.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// HasRecorded reports whether any decision, including a pending reservation, exists for the pair.
func (l *Ledger) HasRecorded(ctx context.Context, gameID int, detail string) (bool, error) {
	var count int64
	if err := l.db.WithContext(ctx).
		Model(&PostedUpdateModel{}).
		Where("game_id = ? AND details = ?", gameID, detail).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check ledger")
	}
	return count > 0, nil
}

// Reserve atomically claims the pair. It returns false when a row already exists,
// meaning another run decided (or is deciding) this event.
func (l *Ledger) Reserve(ctx context.Context, gameID int, detail, score string) (bool, error) {
	row := PostedUpdateModel{
		GameID:   gameID,
		Details:  detail,
		PostType: string(KindReserved),
		Score:    score,
	}
	result := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return false, nil
		}
		return false, errors.Wrap(result.Error, "failed to reserve ledger entry")
	}
	return result.RowsAffected == 1, nil
}

// Record finalizes the decision for the pair, inserting it when no reservation was made.
func (l *Ledger) Record(ctx context.Context, gameID int, kind Kind, detail, score string) error {
	row := PostedUpdateModel{
		GameID:   gameID,
		Details:  detail,
		PostType: string(kind),
		Score:    score,
	}
	// An empty score keeps the snapshot taken at reservation time.
	updates := []string{"post_type", "updated_at"}
	if score != "" {
		updates = append(updates, "score")
	}
	if err := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "game_id"}, {Name: "details"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).
		Create(&row).Error; err != nil {
		return errors.Wrapf(err, "failed to record %s for game %d", kind, gameID)
	}
	return nil
}

// Release drops a pending reservation so a later run can retry the event.
// Finalized decisions are never removed.
func (l *Ledger) Release(ctx context.Context, gameID int, detail string) error {
	if err := l.db.WithContext(ctx).
		Where("game_id = ? AND details = ? AND post_type = ?", gameID, detail, string(KindReserved)).
		Delete(&PostedUpdateModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to release ledger reservation")
	}
	return nil
}

// Get returns the decision for the pair, or ErrNotFound.
func (l *Ledger) Get(ctx context.Context, gameID int, detail string) (IdempotencyRecord, error) {
	var row PostedUpdateModel
	if err := l.db.WithContext(ctx).
		Where("game_id = ? AND details = ?", gameID, detail).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return IdempotencyRecord{}, ErrNotFound
		}
		return IdempotencyRecord{}, errors.Wrap(err, "failed to read ledger entry")
	}
	return toRecord(row), nil
}

// LastScore returns the score snapshot of the most recent forecast sent or queued for the game.
func (l *Ledger) LastScore(ctx context.Context, gameID int) (string, bool, error) {
	var rows []PostedUpdateModel
	if err := l.db.WithContext(ctx).
		Where("game_id = ? AND details LIKE ? AND post_type IN ? AND score <> ''",
			gameID, forecastDetailPrefix+"%", []string{string(KindForecast), string(KindQueued)}).
		Order("id DESC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return "", false, errors.Wrap(err, "failed to read last forecast score")
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].Score, true, nil
}

// List returns every decision recorded for the game, oldest first.
func (l *Ledger) List(ctx context.Context, gameID int) ([]IdempotencyRecord, error) {
	var rows []PostedUpdateModel
	if err := l.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list ledger entries")
	}
	out := make([]IdempotencyRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRecord(row))
	}
	return out, nil
}

func toRecord(row PostedUpdateModel) IdempotencyRecord {
	return IdempotencyRecord{
		GameID:    row.GameID,
		Detail:    row.Details,
		Kind:      Kind(row.PostType),
		Score:     row.Score,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
