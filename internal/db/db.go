package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/garnizeh/portfolio/internal/logger"
)

// DB wraps the sql.DB for connection management
type DB struct {
	conn    *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// New creates a new DB connection. Queries passed to the DB use `?`
// placeholders regardless of driver.
func New(ctx context.Context, driver, dsn string, l *slog.Logger) (*DB, error) {
	if l == nil {
		l = logger.Discard()
	}
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	conn, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	return &DB{conn: conn, dialect: dialect, logger: l}, nil
}

// Close closes the DB connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Exec executes a query
func (db *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, db.dialect.Rebind(query), args...)
}

// QueryRow executes a query that is expected to return at most one row
func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.dialect.Rebind(query), args...)
}

// QueryRows executes a query that returns rows; callers must close them.
func (db *DB) QueryRows(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, db.dialect.Rebind(query), args...)
}

// GetConn returns the underlying sql.DB
func (db *DB) GetConn() *sql.DB {
	return db.conn
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

func (db *DB) TableExists(ctx context.Context, table string) (bool, error) {
	var n int
	if err := db.QueryRow(ctx, db.dialect.TableExistsQuery(), table).Scan(&n); err != nil {
		return false, fmt.Errorf("probe table %s: %w", table, err)
	}
	return n > 0, nil
}

// ColumnExists reports whether table has a column with the given name.
func (db *DB) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	var n int
	if err := db.QueryRow(ctx, db.dialect.ColumnExistsQuery(), table, column).Scan(&n); err != nil {
		return false, fmt.Errorf("probe column %s.%s: %w", table, column, err)
	}
	return n > 0, nil
}

// ColumnNullable reports whether the column accepts NULL. It returns an
// error when the column does not exist.
func (db *DB) ColumnNullable(ctx context.Context, table, column string) (bool, error) {
	var nullable bool
	if err := db.QueryRow(ctx, db.dialect.ColumnNullableQuery(), table, column).Scan(&nullable); err != nil {
		return false, fmt.Errorf("probe nullability of %s.%s: %w", table, column, err)
	}
	return nullable, nil
}
