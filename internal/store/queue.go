package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QueueStatus is the lifecycle state of a queued message.
type QueueStatus string

const (
	QueueStatusQueued    QueueStatus = "queued"
	QueueStatusDelivered QueueStatus = "delivered"
	QueueStatusDiscarded QueueStatus = "discarded"
)

// QueuedMessage is a composed post waiting for the social channel to accept it.
type QueuedMessage struct {
	ID            uint
	GameID        int
	Detail        string
	Text          string
	Status        QueueStatus
	CreatedAt     time.Time
	LastAttemptAt *time.Time
}

// Age is how long the message has been waiting at now.
func (m QueuedMessage) Age(now time.Time) time.Duration {
	return now.Sub(m.CreatedAt)
}

// QueueStore persists the retry queue in the tweet_queue table.
type QueueStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewQueueStore builds a queue store stamped by the wall clock.
func NewQueueStore(db *gorm.DB) *QueueStore {
	return &QueueStore{db: db, now: time.Now}
}

// WithClock overrides the time source used for enqueue and attempt stamps.
func (s *QueueStore) WithClock(now func() time.Time) *QueueStore {
	s.now = now
	return s
}

// Enqueue adds a message for the game. It returns false, without error,
// when the game already has a message waiting.
func (s *QueueStore) Enqueue(ctx context.Context, gameID int, detail, text string) (bool, error) {
	row := QueuedMessageModel{
		GameID:    gameID,
		Details:   detail,
		PostText:  text,
		Status:    string(QueueStatusQueued),
		CreatedAt: s.now().UTC(),
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return false, nil
		}
		return false, errors.Wrap(result.Error, "failed to enqueue message")
	}
	return result.RowsAffected == 1, nil
}

// Oldest returns the longest-waiting queued message. The bool is false when the queue is empty.
func (s *QueueStore) Oldest(ctx context.Context) (QueuedMessage, bool, error) {
	var rows []QueuedMessageModel
	if err := s.db.WithContext(ctx).
		Where("status = ?", string(QueueStatusQueued)).
		Order("created_at ASC").
		Order("id ASC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return QueuedMessage{}, false, errors.Wrap(err, "failed to fetch from queue")
	}
	if len(rows) == 0 {
		return QueuedMessage{}, false, nil
	}
	return toQueuedMessage(rows[0]), true, nil
}

// HasQueued reports whether the game has a message waiting.
func (s *QueueStore) HasQueued(ctx context.Context, gameID int) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&QueuedMessageModel{}).
		Where("game_id = ? AND status = ?", gameID, string(QueueStatusQueued)).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check queue")
	}
	return count > 0, nil
}

// Delete removes a message, after delivery or expiry.
func (s *QueueStore) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&QueuedMessageModel{}, id).Error; err != nil {
		return errors.Wrapf(err, "failed to delete queued message %d", id)
	}
	return nil
}

// TouchAttempt stamps a failed delivery attempt and leaves the message queued.
func (s *QueueStore) TouchAttempt(ctx context.Context, id uint) (time.Time, error) {
	at := s.now().UTC()
	if err := s.db.WithContext(ctx).
		Model(&QueuedMessageModel{}).
		Where("id = ?", id).
		Update("last_attempt_at", at).Error; err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to update queued message %d", id)
	}
	return at, nil
}

// Len is the number of queued messages.
func (s *QueueStore) Len(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&QueuedMessageModel{}).
		Where("status = ?", string(QueueStatusQueued)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count queue")
	}
	return int(count), nil
}

func toQueuedMessage(row QueuedMessageModel) QueuedMessage {
	return QueuedMessage{
		ID:            row.ID,
		GameID:        row.GameID,
		Detail:        row.Details,
		Text:          row.PostText,
		Status:        QueueStatus(row.Status),
		CreatedAt:     row.CreatedAt,
		LastAttemptAt: row.LastAttemptAt,
	}
}
