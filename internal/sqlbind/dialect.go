// Package sqlbind binds rows to positional database/sql statement
// parameters and result columns.
package sqlbind

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var ErrUnknownDialect = errors.New("sqlbind: unknown dialect")

// Dialect is the SQL flavour of a connection: its placeholder style and
// its current-time expression.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	Oracle   Dialect = "oracle"
)

func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pq":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "oracle":
		return Oracle, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

// Placeholder returns the i-th (1-based) parameter marker.
func (d Dialect) Placeholder(i int) string {
	switch d {
	case Postgres:
		return "$" + strconv.Itoa(i)
	case Oracle:
		return ":" + strconv.Itoa(i)
	default:
		return "?"
	}
}

// Now is the SQL expression for the current time.
func (d Dialect) Now() string {
	switch d {
	case Postgres:
		return "now()"
	case MySQL:
		return "NOW()"
	case Oracle:
		return "SYSDATE"
	default:
		return "CURRENT_TIMESTAMP"
	}
}

// driverName is the database/sql driver registered for d. Oracle has none.
func (d Dialect) driverName() string {
	switch d {
	case SQLite, Postgres, MySQL:
		return string(d)
	}
	return ""
}

// Open opens a pool for d. A sqlite pool is limited to one connection so
// that ":memory:" databases stay a single database.
func Open(d Dialect, dsn string) (*sql.DB, error) {
	driver := d.driverName()
	if driver == "" {
		return nil, fmt.Errorf("%w: no driver for %q", ErrUnknownDialect, d)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if d == SQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(10 * time.Minute)
	}
	return db, nil
}
