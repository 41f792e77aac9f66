// Package kbcustom defines the tables of the NNSA KB Custom schema as
// column descriptor tables for the generic record codec.
package kbcustom

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tuannm99/novakb/internal/record"
)

// SchemaName is the name of the database schema these tables belong to.
const SchemaName = "NNSA KB Custom"

var ErrUnknownTable = errors.New("kbcustom: unknown table")

const (
	// idLimit caps number(9) identifier columns.
	idLimit = 1_000_000_000
	// jdateLimit caps number(8) julian dates.
	jdateLimit = 100_000_000

	minLong = math.MinInt64
)

var nan = math.NaN()

var tables = map[string]*record.Schema{}

func register(s *record.Schema) *record.Schema {
	tables[s.Name] = s
	return s
}

// All returns every table, sorted by name.
func All() []*record.Schema {
	out := make([]*record.Schema, 0, len(tables))
	for _, s := range tables {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a table by name, ignoring case.
func Lookup(name string) (*record.Schema, error) {
	s, ok := tables[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return s, nil
}

// Names lists the table names in sorted order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}
