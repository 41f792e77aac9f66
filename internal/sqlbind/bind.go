package sqlbind

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tuannm99/novakb/internal/record"
)

// LoadDateColumn is appended to every insert after the schema columns.
const LoadDateColumn = "lddate"

var ErrColumnCount = errors.New("sqlbind: result has too few columns")

// Preparer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Queryer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// InsertStatement is a parameterized insert of every column of s plus
// lddate, in canonical order.
func InsertStatement(s *record.Schema, table string, d Dialect) string {
	var b strings.Builder
	b.WriteString("insert into ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(s.ColumnNames(), ", "))
	b.WriteString(", " + LoadDateColumn + ") values (")
	for i := 1; i <= s.NumCols()+1; i++ {
		if i > 1 {
			b.WriteString(", ")
		}
		b.WriteString(d.Placeholder(i))
	}
	b.WriteString(")")
	return b.String()
}

// Args returns the statement parameters for row. Null strings and NaN
// floats bind as SQL NULL.
func Args(row *record.Row, lddate time.Time) []any {
	s := row.Schema()
	args := make([]any, 0, s.NumCols()+1)
	for i, c := range s.Cols {
		v := row.At(i)
		if c.Type == record.ColFloat64 && math.IsNaN(v.(float64)) {
			v = nil
		}
		args = append(args, v)
	}
	return append(args, lddate)
}

// InsertRows executes one prepared insert per row. It reports how many rows
// were inserted; rows inserted before a failure stay.
func InsertRows(ctx context.Context, p Preparer, d Dialect, s *record.Schema, table string, rows []*record.Row, lddate time.Time) (int, error) {
	query := InsertStatement(s, table, d)
	stmt, err := p.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare %q: %w", query, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if row.Schema() != s {
			return i, fmt.Errorf("row %d: %w: row is %s", i, record.ErrSchemaMismatch, row.Schema().Name)
		}
		if _, err := stmt.ExecContext(ctx, Args(row, lddate)...); err != nil {
			return i, fmt.Errorf("row %d: exec %q: %w", i, query, err)
		}
	}
	return len(rows), nil
}

// InsertSQL renders a literal insert of row, with lddate set to the
// dialect's current time.
func InsertSQL(row *record.Row, table string, d Dialect) string {
	s := row.Schema()
	vals := make([]string, 0, s.NumCols()+1)
	for i, c := range s.Cols {
		vals = append(vals, literal(c, row.At(i)))
	}
	vals = append(vals, d.Now())

	return fmt.Sprintf("insert into %s (%s, %s) values (%s)",
		table, strings.Join(s.ColumnNames(), ", "), LoadDateColumn, strings.Join(vals, ", "))
}

func literal(c record.Column, v any) string {
	switch c.Type {
	case record.ColInt64:
		return strconv.FormatInt(v.(int64), 10)
	case record.ColFloat64:
		f := v.(float64)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "NULL"
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		if v == nil {
			return "NULL"
		}
		return "'" + strings.ReplaceAll(v.(string), "'", "''") + "'"
	}
}

// ScanRow scans the current result row into a row of s. The schema columns
// are read positionally starting at offset; other columns are ignored.
// SQL NULL reads as the column NA.
func ScanRow(rows *sql.Rows, s *record.Schema, offset int) (*record.Row, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	if len(names) < offset+s.NumCols() {
		return nil, fmt.Errorf("%w: %s needs %d from offset %d, got %d", ErrColumnCount, s.Name, s.NumCols(), offset, len(names))
	}

	targets := make([]any, len(names))
	for i := range targets {
		targets[i] = new(any)
	}
	for i, c := range s.Cols {
		switch c.Type {
		case record.ColInt64:
			targets[offset+i] = new(sql.NullInt64)
		case record.ColFloat64:
			targets[offset+i] = new(sql.NullFloat64)
		default:
			targets[offset+i] = new(sql.NullString)
		}
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	row := record.NewRow(s)
	for i := range s.Cols {
		var v any
		switch t := targets[offset+i].(type) {
		case *sql.NullInt64:
			if !t.Valid {
				continue
			}
			v = t.Int64
		case *sql.NullFloat64:
			if !t.Valid {
				continue
			}
			v = t.Float64
		case *sql.NullString:
			if !t.Valid {
				continue
			}
			v = t.String
		}
		if err := row.SetAt(i, v); err != nil {
			return nil, err
		}
	}
	return row, nil
}

// QueryRows runs query and scans every result row from column 0.
func QueryRows(ctx context.Context, q Queryer, s *record.Schema, query string, args ...any) ([]*record.Row, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", query, err)
	}
	defer rows.Close()

	var out []*record.Row
	for rows.Next() {
		row, err := ScanRow(rows, s, 0)
		if err != nil {
			return out, fmt.Errorf("query %q row %d: %w", query, len(out), err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("query %q: iterate: %w", query, err)
	}
	return out, nil
}
