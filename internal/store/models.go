package store

import "time"

// GameLogModel is one historical game result in the 'gamelogs' table.
// The table is provisioned outside this service; the model only describes the columns read.
type GameLogModel struct {
	GameID        int64     `gorm:"column:game_id;primaryKey;autoIncrement:false"`
	Date          time.Time `gorm:"column:date;type:date;not null;index"`
	GameType      string    `gorm:"column:game_type;type:varchar(16)"`
	VisitorTeam   string    `gorm:"column:visitor_team;type:varchar(8);not null;index"`
	HomeTeam      string    `gorm:"column:home_team;type:varchar(8);not null;index"`
	VisitorScore  int       `gorm:"column:visitor_score;not null"`
	HomeScore     int       `gorm:"column:home_score;not null"`
	IsNegroLeague bool      `gorm:"column:is_negro_league;not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (GameLogModel) TableName() string {
	return "gamelogs"
}

// PostedUpdateModel is one idempotency decision in the 'posted_updates' table.
// (game_id, details) is unique so a reservation is a single atomic insert.
type PostedUpdateModel struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    int       `gorm:"column:game_id;not null;uniqueIndex:idx_posted_updates_game_detail"`
	Details   string    `gorm:"column:details;type:varchar(64);not null;uniqueIndex:idx_posted_updates_game_detail"`
	PostType  string    `gorm:"column:post_type;type:varchar(32);not null"`
	Score     string    `gorm:"column:score;type:varchar(16)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (PostedUpdateModel) TableName() string {
	return "posted_updates"
}

// QueuedMessageModel is one pending post in the 'tweet_queue' table.
// game_id is unique: the queue holds at most one pending item per game.
type QueuedMessageModel struct {
	ID            uint       `gorm:"primaryKey"`
	GameID        int        `gorm:"column:game_id;not null;uniqueIndex"`
	Details       string     `gorm:"column:details;type:varchar(64);not null"`
	PostText      string     `gorm:"column:post_text;type:text;not null"`
	Status        string     `gorm:"column:status;type:varchar(16);not null;index"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null;index"`
	LastAttemptAt *time.Time `gorm:"column:last_attempt_at"`
}

// TableName explicitly sets the table name for GORM.
func (QueuedMessageModel) TableName() string {
	return "tweet_queue"
}
