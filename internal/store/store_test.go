package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/preston-bernstein/scorigami-service/internal/config"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.DatabaseConfig{Driver: DriverSQLite}, nil)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, MigrateHistory(ctx, db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedLogs(t *testing.T, db *gorm.DB, logs ...GameLogModel) {
	t.Helper()
	for i := range logs {
		if logs[i].GameID == 0 {
			logs[i].GameID = int64(i + 1)
		}
	}
	require.NoError(t, db.Create(&logs).Error)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, nil)
	require.Error(t, err)
}

func TestOpenPostgresRequiresURL(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: DriverPostgres}, nil)
	require.Error(t, err)
}

func TestOpenSQLitePings(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Ping(context.Background(), db))
}

func TestPrepareHonorsAutoMigrate(t *testing.T) {
	ctx := context.Background()

	off := config.DatabaseConfig{Driver: DriverSQLite}
	db, err := Open(off, nil)
	require.NoError(t, err)
	defer func() { _ = Close(db) }()
	require.NoError(t, Prepare(ctx, db, off))
	require.False(t, db.Migrator().HasTable(&PostedUpdateModel{}))

	on := config.DatabaseConfig{Driver: DriverSQLite, AutoMigrate: true}
	require.NoError(t, Prepare(ctx, db, on))
	require.True(t, db.Migrator().HasTable(&PostedUpdateModel{}))
	require.True(t, db.Migrator().HasTable(&QueuedMessageModel{}))
	require.True(t, db.Migrator().HasTable(&GameLogModel{}))
}
