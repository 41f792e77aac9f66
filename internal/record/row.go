package record

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Row holds one value per column of its schema, in canonical order.
// Values are always int64, float64, string or nil (a null string).
type Row struct {
	schema *Schema
	vals   []any
}

// NewRow returns a row with every field at its column's NA sentinel.
func NewRow(s *Schema) *Row {
	vals := make([]any, len(s.Cols))
	for i, c := range s.Cols {
		vals[i] = c.NA
	}
	return &Row{schema: s, vals: vals}
}

// NewRowValues builds a row from positional values in canonical order.
func NewRowValues(s *Schema, values ...any) (*Row, error) {
	if len(values) != s.NumCols() {
		return nil, fmt.Errorf("%w: %s wants %d values, got %d", ErrSchemaMismatch, s.Name, s.NumCols(), len(values))
	}
	r := NewRow(s)
	for i, v := range values {
		if err := r.SetAt(i, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Row) Schema() *Schema { return r.schema }

// At returns the value at canonical position i.
func (r *Row) At(i int) any { return r.vals[i] }

// Values returns a copy of the values in canonical order.
func (r *Row) Values() []any {
	out := make([]any, len(r.vals))
	copy(out, r.vals)
	return out
}

func (r *Row) Get(name string) (any, error) {
	i, ok := r.schema.Index(name)
	if !ok {
		return nil, unknownField(r.schema.Name, name)
	}
	return r.vals[i], nil
}

func (r *Row) Set(name string, v any) error {
	i, ok := r.schema.Index(name)
	if !ok {
		return unknownField(r.schema.Name, name)
	}
	return r.SetAt(i, v)
}

// SetAt validates v against column i and stores it. On error the previous
// value is kept. Setting nil on a string column stores the column's NA.
func (r *Row) SetAt(i int, v any) error {
	c := r.schema.Cols[i]
	switch c.Type {
	case ColInt64:
		x, ok := asInt64(v)
		if !ok {
			return typeMismatch(r.schema, c, v)
		}
		if c.Limit > 0 && x >= c.Limit {
			return fmt.Errorf("%w: %s.%s = %d, limit %d", ErrOutOfRange, r.schema.Name, c.Name, x, c.Limit)
		}
		r.vals[i] = x

	case ColFloat64:
		x, ok := asFloat64(v)
		if !ok {
			return typeMismatch(r.schema, c, v)
		}
		r.vals[i] = x

	case ColString:
		if v == nil {
			r.vals[i] = c.NA
			return nil
		}
		str, ok := v.(string)
		if !ok {
			return typeMismatch(r.schema, c, v)
		}
		if len(str) > c.MaxLen {
			return fmt.Errorf("%w: %s.%s is %d bytes, max %d", ErrTooLong, r.schema.Name, c.Name, len(str), c.MaxLen)
		}
		if !utf8.ValidString(str) {
			return fmt.Errorf("%w: %s.%s is not valid UTF-8", ErrTypeMismatch, r.schema.Name, c.Name)
		}
		r.vals[i] = str
	}
	return nil
}

func typeMismatch(s *Schema, c Column, v any) error {
	return fmt.Errorf("%w: %s.%s is %s, got %T", ErrTypeMismatch, s.Name, c.Name, c.Type, v)
}

func (r *Row) Int64(name string) (int64, error) {
	v, err := r.typed(name, ColInt64)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (r *Row) Float64(name string) (float64, error) {
	v, err := r.typed(name, ColFloat64)
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// Str returns a string field; ok is false when the field is null.
func (r *Row) Str(name string) (s string, ok bool, err error) {
	v, err := r.typed(name, ColString)
	if err != nil || v == nil {
		return "", false, err
	}
	return v.(string), true, nil
}

func (r *Row) typed(name string, t ColumnType) (any, error) {
	i, ok := r.schema.Index(name)
	if !ok {
		return nil, unknownField(r.schema.Name, name)
	}
	if c := r.schema.Cols[i]; c.Type != t {
		return nil, fmt.Errorf("%w: %s.%s is %s, not %s", ErrTypeMismatch, r.schema.Name, c.Name, c.Type, t)
	}
	return r.vals[i], nil
}

// IsNA reports whether a field holds its column's NA sentinel.
func (r *Row) IsNA(name string) (bool, error) {
	i, ok := r.schema.Index(name)
	if !ok {
		return false, unknownField(r.schema.Name, name)
	}
	return r.isNAAt(i), nil
}

func (r *Row) isNAAt(i int) bool {
	return sameValue(r.vals[i], r.schema.Cols[i].NA)
}

func (r *Row) Clone() *Row {
	return &Row{schema: r.schema, vals: r.Values()}
}

// Equal compares every field. Two rows are equal when their binary
// encodings are.
func (r *Row) Equal(o *Row) bool {
	if o == nil || r.schema != o.schema {
		return false
	}
	return bytes.Equal(EncodeRow(r), EncodeRow(o))
}

// EqualPrimaryKey compares only the primary-key columns.
func (r *Row) EqualPrimaryKey(o *Row) bool { return r.equalAt(o, r.schema.pk) }

// EqualUniqueKey compares only the unique-key columns.
func (r *Row) EqualUniqueKey(o *Row) bool { return r.equalAt(o, r.schema.uk) }

func (r *Row) equalAt(o *Row, idx []int) bool {
	if o == nil || r.schema != o.schema || len(idx) == 0 {
		return false
	}
	for _, i := range idx {
		if !sameValue(r.vals[i], o.vals[i]) {
			return false
		}
	}
	return true
}

// Hash is computed from the current field values on every call.
func (r *Row) Hash() uint64 { return xxhash.Sum64(EncodeRow(r)) }

// String renders the row as a text line in canonical column order.
func (r *Row) String() string {
	line, err := FormatLine(r, nil)
	if err != nil {
		return fmt.Sprintf("%s%v", r.schema.Name, r.vals)
	}
	return line
}

func sameValue(a, b any) bool {
	fa, ok := a.(float64)
	if !ok {
		return a == b
	}
	fb, ok := b.(float64)
	if !ok {
		return false
	}
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return math.IsNaN(fa) && math.IsNaN(fb)
	}
	return math.Float64bits(fa) == math.Float64bits(fb)
}

// ---- small helpers to accept multiple numeric types on set ----
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	return 0, false
}
