package db

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/garnizeh/portfolio/internal/config"
)

// ErrUnsupported is returned for schema changes a dialect cannot express.
var ErrUnsupported = errors.New("not supported by this database")

// Dialect holds the SQL differences between the supported drivers.
type Dialect struct {
	name string
}

var (
	SQLite   = Dialect{name: config.DriverSQLite}
	Postgres = Dialect{name: config.DriverPostgres}
)

func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case config.DriverSQLite, "":
		return SQLite, nil
	case config.DriverPostgres, "pgx":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
}

func (d Dialect) Name() string { return d.name }

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// MigrationsDir is the directory inside the migrations FS for the dialect.
func (d Dialect) MigrationsDir() string {
	return "migrations/" + d.name
}

// Rebind rewrites `?` placeholders into the dialect's positional form.
// Question marks inside single-quoted literals, double-quoted identifiers
// and -- line comments are left alone. Block comments are not recognised.
func (d Dialect) Rebind(query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	var quote byte // '\'', '"' or 0
	inComment := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			inComment = true
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func (d Dialect) TableExistsQuery() string {
	if d == Postgres {
		return `SELECT COUNT(1) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?`
	}
	return `SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`
}

func (d Dialect) ColumnExistsQuery() string {
	if d == Postgres {
		return `SELECT COUNT(1) FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ? AND column_name = ?`
	}
	return `SELECT COUNT(1) FROM pragma_table_info(?) WHERE name = ?`
}

func (d Dialect) ColumnNullableQuery() string {
	if d == Postgres {
		return `SELECT is_nullable = 'YES' FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ? AND column_name = ?`
	}
	return `SELECT "notnull" = 0 FROM pragma_table_info(?) WHERE name = ?`
}

// AddColumnStmt returns the statement adding a nullable text column.
func (d Dialect) AddColumnStmt(table, column string, size int) string {
	if d == Postgres {
		return fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s VARCHAR(%d)`, table, column, size)
	}
	return fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s TEXT`, table, column)
}

// DropNotNullStmt returns the statement relaxing a NOT NULL constraint.
// SQLite cannot alter column constraints in place.
func (d Dialect) DropNotNullStmt(table, column string) (string, error) {
	if d == Postgres {
		return fmt.Sprintf(`ALTER TABLE %s ALTER COLUMN %s DROP NOT NULL`, table, column), nil
	}
	return "", fmt.Errorf("drop not null on %s.%s: %w", table, column, ErrUnsupported)
}
