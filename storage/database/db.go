package database

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/masomo-apply/core"
)

//go:embed migrations/*.sql
var migrations embed.FS

// driver names as registered by the imported database/sql drivers
var driverNames = map[string]string{
	core.StorageSQLite:   "sqlite",
	core.StoragePostgres: "postgres",
}

// Open opens the SQL database configured in conf.Storage.
func Open(conf *core.Config) (*sqlx.DB, error) {
	driver, ok := driverNames[conf.Storage.Driver]
	if !ok {
		return nil, errors.Errorf("unsupported SQL storage driver %q", conf.Storage.Driver)
	}
	db, err := sqlx.Open(driver, conf.Storage.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if driver == "sqlite" {
		// a single connection keeps in-memory databases alive and serializes writers
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping cancelled")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migrate runs a goose command ("up", "down", "status", ...) with the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, dialect, command string, args ...string) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	if err := goose.RunContext(ctx, command, db, "migrations", args...); err != nil {
		return errors.Wrapf(err, "migrating database (%s)", command)
	}
	return nil
}

// Setup opens, pings and migrates the configured SQL database.
func Setup(ctx context.Context, conf *core.Config) (*sqlx.DB, error) {
	db, err := Open(conf)
	if err != nil {
		return nil, err
	}
	if err = ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	if err = Migrate(ctx, db.DB, Dialect(conf), "up"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Dialect returns the goose dialect of the configured driver.
func Dialect(conf *core.Config) string {
	if conf.Storage.Driver == core.StoragePostgres {
		return "postgres"
	}
	return "sqlite3"
}
