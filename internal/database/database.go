package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	_ "modernc.org/sqlite"

	"coffeeapi/internal/config"
)

var sqlOpen = sql.Open

const pingTimeout = 5 * time.Second

// dialect describes how one SQL backend is opened and tuned.
type dialect struct {
	driver  string
	system  attribute.KeyValue
	opts    []otelsql.Option
	tune    func(*sql.DB)
	prepare func(*sql.DB) error
}

// BuildPostgresDSN renders c as a postgres:// URL, reporting every missing required field.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"DB_HOST", c.Host}, {"DB_PORT", c.Port}, {"DB_USER", c.User}, {"DB_NAME", c.Name},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("invalid database config: missing %s", strings.Join(missing, ", "))
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.User(c.User),
		Host:   c.Host + ":" + c.Port,
		Path:   c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String(), nil
}

// NewPostgres opens the coffee store database through pgx, traced by otelsql.
func NewPostgres(c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}
	return open(dialect{
		driver: "pgx",
		system: semconv.DBSystemPostgreSQL,
		opts:   []otelsql.Option{otelsql.WithSQLCommenter(true)},
		tune: func(db *sql.DB) {
			if c.MaxOpenConns > 0 {
				db.SetMaxOpenConns(c.MaxOpenConns)
			}
			if c.MaxIdleConns > 0 {
				db.SetMaxIdleConns(c.MaxIdleConns)
			}
			if c.ConnMaxLifetimeSec > 0 {
				db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
			}
		},
	}, dsn)
}

// NewSQLite opens (creating if needed) the SQLite file at c.Path with the pure-Go modernc driver.
// The pool is limited to one connection since SQLite allows a single writer.
func NewSQLite(c config.SQLiteConfig) (*sql.DB, error) {
	if c.Path == "" {
		return nil, fmt.Errorf("invalid sqlite config: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	return open(dialect{
		driver: "sqlite",
		system: semconv.DBSystemSqlite,
		tune:   func(db *sql.DB) { db.SetMaxOpenConns(1) },
		prepare: func(db *sql.DB) error {
			if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
				return fmt.Errorf("enable wal: %w", err)
			}
			return nil
		},
	}, c.Path)
}

func open(d dialect, dsn string) (*sql.DB, error) {
	opts := append([]otelsql.Option{otelsql.WithAttributes(d.system)}, d.opts...)
	driverName, err := otelsql.Register(d.driver, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	if d.tune != nil {
		d.tune(db)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if d.prepare != nil {
		if err := d.prepare(db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}
