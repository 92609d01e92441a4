package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	// import db drivers
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/sevigo/snippet-review/internal/config"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Dialect names the SQL flavour behind a DATABASE_URL.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func init() { //nolint:gochecknoinits // modernc registers as "sqlite", which sqlx does not know
	sqlx.BindDriver(string(DialectSQLite), sqlx.QUESTION)
}

// DB is a wrapper around the sqlx.DB connection pool.
type DB struct {
	*sqlx.DB
	Dialect Dialect
}

// ParseURL maps a DATABASE_URL to a driver dialect and a DSN the driver accepts.
// postgres:// and postgresql:// URLs are passed through to lib/pq; sqlite://path
// and file:path are turned into a modernc sqlite DSN with foreign keys enabled.
func ParseURL(raw string) (Dialect, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("database url is empty")
	}

	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		if _, err := url.Parse(raw); err != nil {
			return "", "", fmt.Errorf("invalid postgres url: %w", err)
		}
		return DialectPostgres, raw, nil
	case strings.HasPrefix(raw, "sqlite://"), strings.HasPrefix(raw, "sqlite3://"):
		path := raw[strings.Index(raw, "://")+3:]
		return sqliteDSN(path)
	case strings.HasPrefix(raw, "file:"):
		return sqliteDSN(strings.TrimPrefix(raw, "file:"))
	default:
		return "", "", fmt.Errorf("unsupported database url scheme in %q", redact(raw))
	}
}

func sqliteDSN(path string) (Dialect, string, error) {
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "", "", fmt.Errorf("sqlite url has no database path")
	}
	params := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"
	return DialectSQLite, path + "?" + params, nil
}

// NewDatabase opens and pings the database named by cfg.URL. Schema creation
// is left to RunMigrations.
func NewDatabase(cfg *config.DBConfig) (*DB, func(), error) {
	dialect, dsn, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, func() {}, err
	}

	// sqlx.Connect opens and pings
	conn, err := sqlx.Connect(string(dialect), dsn)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialect == DialectSQLite {
		// a single writer avoids SQLITE_BUSY under concurrent requests
		conn.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	conn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, func() {}, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{DB: conn, Dialect: dialect}
	return db, func() {
		if err := conn.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
	}, nil
}

// RunMigrations creates the schema from the migrations embedded in the
// binary. Running it against an up-to-date schema is a no-op. A database left
// "dirty" by an earlier failed run is reported instead of retried.
func (db *DB) RunMigrations() error {
	migrator, release, err := db.newMigrator()
	if err != nil {
		return err
	}
	defer release()

	_, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		return fmt.Errorf("failed to apply migrations: database is in dirty state. You might need to manually fix it (e.g., 'migrate force <version>') or check logs for previous migration errors")
	}

	err = migrator.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// SchemaVersion reports the last applied migration.
func (db *DB) SchemaVersion() (uint, bool, error) {
	migrator, release, err := db.newMigrator()
	if err != nil {
		return 0, false, err
	}
	defer release()

	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// newMigrator creates a new migrate instance using the embedded migration
// files. The returned release func frees what the migrator holds but leaves
// the pool open: migrate's drivers close the *sql.DB they were built with, so
// postgres gets its own *sql.Conn and sqlite only has its source closed.
func (db *DB) newMigrator() (*migrate.Migrate, func(), error) {
	sourceDriver, err := iofs.New(migrationsFS, "migrations/"+string(db.Dialect))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	var (
		dbDriver database.Driver
		conn     *sql.Conn
	)
	switch db.Dialect {
	case DialectPostgres:
		ctx := context.Background()
		conn, err = db.DB.Conn(ctx)
		if err != nil {
			_ = sourceDriver.Close()
			return nil, nil, fmt.Errorf("failed to reserve migration connection: %w", err)
		}
		dbDriver, err = postgres.WithConnection(ctx, conn, &postgres.Config{})
	case DialectSQLite:
		dbDriver, err = sqlite.WithInstance(db.DB.DB, &sqlite.Config{})
	default:
		err = fmt.Errorf("no migration driver for dialect %q", db.Dialect)
	}
	if err != nil {
		_ = sourceDriver.Close()
		if conn != nil {
			_ = conn.Close()
		}
		return nil, nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, string(db.Dialect), dbDriver)
	if err != nil {
		_ = sourceDriver.Close()
		if conn != nil {
			_ = conn.Close()
		}
		return nil, nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	release := func() {
		if err := sourceDriver.Close(); err != nil {
			slog.Warn("failed to close migration source", "error", err)
		}
		if conn != nil {
			if err := conn.Close(); err != nil {
				slog.Warn("failed to release migration connection", "error", err)
			}
		}
	}
	return migrator, release, nil
}

func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}
