package store

import (
	"context"
	"log/slog"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/preston-bernstein/scorigami-service/internal/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file::memory:"
)

// Open connects to the relational store holding history, the ledger and the queue.
func Open(cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres, "":
		if cfg.URL == "" {
			return nil, errors.New("database url is required for postgres")
		}
		dialector = postgres.Open(cfg.URL)
	case DriverSQLite:
		dsn := cfg.URL
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormSlogLogger(logger, false),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", cfg.Driver)
	}

	if cfg.Driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get sqlite sql.DB")
		}
		// A single connection keeps in-memory databases shared and serializes writers.
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates the tables this service writes: the idempotency ledger and the retry queue.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&PostedUpdateModel{}, &QueuedMessageModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate ledger tables")
	}
	return nil
}

// MigrateHistory creates the historical game log table. Used for local databases and tests.
func MigrateHistory(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&GameLogModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate gamelogs")
	}
	return nil
}

// Prepare runs the migrations cfg asks for. SQLite databases also get the history table since local
// runs start empty; hosted history is loaded out of band.
func Prepare(ctx context.Context, db *gorm.DB, cfg config.DatabaseConfig) error {
	if !cfg.AutoMigrate {
		return nil
	}
	if err := Migrate(ctx, db); err != nil {
		return err
	}
	if cfg.Driver == DriverSQLite {
		return MigrateHistory(ctx, db)
	}
	return nil
}

// Ping verifies the connection.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB")
	}
	return errors.Wrap(sqlDB.PingContext(ctx), "failed to ping database")
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB")
	}
	return sqlDB.Close()
}
