package record

import (
	"fmt"
	"strings"
)

type ColumnType uint8

const (
	ColInt64 ColumnType = iota
	ColFloat64
	ColString
)

func (t ColumnType) String() string {
	switch t {
	case ColInt64:
		return "long"
	case ColFloat64:
		return "double"
	case ColString:
		return "string"
	default:
		return fmt.Sprintf("ColumnType(%d)", uint8(t))
	}
}

// Column is the static description of one field.
//
// NA holds the not-applicable sentinel: int64 for ColInt64, float64 for
// ColFloat64, and string or nil (null) for ColString.
type Column struct {
	Name   string
	Type   ColumnType
	Format string
	MaxLen int   // ColString: max UTF-8 bytes
	Limit  int64 // ColInt64: exclusive upper bound, 0 = unbounded
	NA     any
}

// Long describes an integer identifier column. limit is exclusive; 0 disables the check.
func Long(name string, limit, na int64) Column {
	return Column{Name: name, Type: ColInt64, Format: "%d", Limit: limit, NA: na}
}

func Double(name, format string, na float64) Column {
	return Column{Name: name, Type: ColFloat64, Format: format, NA: na}
}

// String describes a bounded string column whose NA is null.
func String(name string, maxLen int) Column {
	return Column{Name: name, Type: ColString, Format: "%s", MaxLen: maxLen}
}

// WithNA returns a copy of a string column using na as its sentinel instead of null.
func (c Column) WithNA(na string) Column {
	c.NA = na
	return c
}

// Width is the largest number of bytes this column takes in a binary row.
func (c Column) Width() int {
	if c.Type == ColString {
		return 4 + c.MaxLen
	}
	return 8
}

// Schema is the ordered, immutable column table of one database table.
// Column order is the canonical order for binary rows and default text lines.
type Schema struct {
	Name       string
	Cols       []Column
	PrimaryKey []string
	UniqueKey  []string

	index    map[string]int
	pk       []int
	uk       []int
	maxBytes int
}

// NewSchema validates the column table and builds the name index.
func NewSchema(name string, cols []Column, primaryKey, uniqueKey []string) (*Schema, error) {
	s := &Schema{
		Name:  strings.ToLower(name),
		Cols:  make([]Column, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		c.Name = strings.ToLower(c.Name)
		if c.Name == "" {
			return nil, fmt.Errorf("record: %s column %d has no name", s.Name, i)
		}
		if _, dup := s.index[c.Name]; dup {
			return nil, fmt.Errorf("record: %s column %q defined twice", s.Name, c.Name)
		}
		if err := checkNA(c); err != nil {
			return nil, fmt.Errorf("record: %s: %w", s.Name, err)
		}
		s.Cols[i] = c
		s.index[c.Name] = i
		s.maxBytes += c.Width()
	}

	var err error
	if s.pk, err = s.indexes(primaryKey); err != nil {
		return nil, err
	}
	if s.uk, err = s.indexes(uniqueKey); err != nil {
		return nil, err
	}
	s.PrimaryKey = s.names(s.pk)
	s.UniqueKey = s.names(s.uk)
	return s, nil
}

// MustSchema is NewSchema for package-level table definitions.
func MustSchema(name string, cols []Column, primaryKey, uniqueKey []string) *Schema {
	s, err := NewSchema(name, cols, primaryKey, uniqueKey)
	if err != nil {
		panic(err)
	}
	return s
}

func checkNA(c Column) error {
	var ok bool
	switch c.Type {
	case ColInt64:
		_, ok = c.NA.(int64)
	case ColFloat64:
		_, ok = c.NA.(float64)
	case ColString:
		if c.NA == nil {
			ok = true
		} else {
			var na string
			na, ok = c.NA.(string)
			ok = ok && len(na) <= c.MaxLen
		}
	default:
		return fmt.Errorf("column %q has unsupported type %d", c.Name, c.Type)
	}
	if !ok {
		return fmt.Errorf("column %q: NA %v (%T) does not fit a %s column", c.Name, c.NA, c.NA, c.Type)
	}
	return nil
}

func (s *Schema) indexes(names []string) ([]int, error) {
	out := make([]int, 0, len(names))
	for _, n := range names {
		i, ok := s.Index(n)
		if !ok {
			return nil, unknownField(s.Name, n)
		}
		out = append(out, i)
	}
	return out, nil
}

func (s *Schema) names(idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = s.Cols[j].Name
	}
	return out
}

func (s *Schema) NumCols() int { return len(s.Cols) }

// Index returns the canonical position of a column; lookup ignores case.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[strings.ToLower(name)]
	return i, ok
}

func (s *Schema) HasColumn(name string) bool {
	_, ok := s.Index(name)
	return ok
}

// Column looks up a column by name.
func (s *Schema) Column(name string) (Column, error) {
	i, ok := s.Index(name)
	if !ok {
		return Column{}, unknownField(s.Name, name)
	}
	return s.Cols[i], nil
}

// ColumnNames returns the names in canonical order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.Cols))
	for i, c := range s.Cols {
		names[i] = c.Name
	}
	return names
}

// MaxBytes is the size of the largest binary encoding of a row: every
// string at its max length.
func (s *Schema) MaxBytes() int { return s.maxBytes }

// ValidateColumns checks a column projection: every name must exist and
// appear once. It returns the canonical positions in projection order.
func (s *Schema) ValidateColumns(names []string) ([]int, error) {
	seen := make(map[int]bool, len(names))
	out := make([]int, len(names))
	for i, n := range names {
		j, ok := s.Index(n)
		if !ok {
			return nil, unknownField(s.Name, n)
		}
		if seen[j] {
			return nil, fmt.Errorf("record: %s column %q listed twice", s.Name, s.Cols[j].Name)
		}
		seen[j] = true
		out[i] = j
	}
	return out, nil
}
