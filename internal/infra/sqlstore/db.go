// Package sqlstore implements the repository ports on database/sql.
// SQLite (mattn/go-sqlite3) backs single-user installs; PostgreSQL (pgx)
// backs hosted ones. Every query is scoped by owner_id.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/clientive/clientive/internal/domain"
)

// Ensure DB implements domain.StoreProvider.
var _ domain.StoreProvider = (*DB)(nil)

// Supported database drivers, as named in [database] driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// dialect holds the per-driver differences in SQL text.
type dialect struct {
	driverName string
	realType   string
	boolType   string
	numbered   bool // $1, $2 placeholders instead of ?
}

var dialects = map[string]dialect{
	DriverSQLite:   {driverName: "sqlite3", realType: "REAL", boolType: "INTEGER"},
	DriverPostgres: {driverName: "pgx", realType: "DOUBLE PRECISION", boolType: "BOOLEAN", numbered: true},
}

// DB is an open database shared by every owner-scoped store.
type DB struct {
	db      *sql.DB
	now     func() time.Time
	dialect dialect
}

// Open connects to the database and applies the schema.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q (use %s or %s)", driver, DriverSQLite, DriverPostgres)
	}
	if dsn == "" {
		return nil, fmt.Errorf("database dsn is required for driver %s", driver)
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == DriverSQLite {
		// SQLite allows one writer at a time.
		db.SetMaxOpenConns(1)
	}

	store := &DB{db: db, dialect: d, now: time.Now}
	if err := store.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying connection pool.
func (s *DB) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *DB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ForOwner returns repositories confined to owner's rows.
func (s *DB) ForOwner(owner string) domain.Store {
	return domain.Store{
		Clients: &clientRepo{db: s, owner: owner},
		Tasks:   &taskRepo{db: s, owner: owner},
		Orders:  &orderRepo{db: s, owner: owner},
		Account: &accountRepo{db: s, owner: owner},
	}
}

func (s *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			interactions TEXT NOT NULL DEFAULT '[]',
			last_contact TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS clients_owner ON clients (owner_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			client_id TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			due_date TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT '',
			completed ` + s.dialect.boolType + ` NOT NULL DEFAULT FALSE,
			email_notify ` + s.dialect.boolType + ` NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS tasks_owner ON tasks (owner_id, due_date)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			client_id TEXT NOT NULL DEFAULT '',
			product TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			amount ` + s.dialect.realType + ` NOT NULL DEFAULT 0,
			date TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS orders_owner ON orders (owner_id, date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $N for drivers that need it.
func (s *DB) rebind(query string) string {
	if !s.dialect.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

// execOne runs a statement that must touch exactly one row.
func (s *DB) execOne(ctx context.Context, notFound error, query string, args ...any) error {
	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// Times are stored as RFC 3339 text so both drivers round-trip them alike.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
