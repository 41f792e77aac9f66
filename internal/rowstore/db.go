// Package rowstore keeps binary rows in a pebble database, keyed by table
// and primary key.
package rowstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/tuannm99/novakb/internal/record"
)

var (
	ErrDatabaseClosed = errors.New("rowstore: database is closed")
	ErrRowNotFound    = errors.New("rowstore: row not found")
	ErrNoPrimaryKey   = errors.New("rowstore: table has no primary key")
	ErrKeyArity       = errors.New("rowstore: wrong number of key values")
	ErrSchemaChanged  = errors.New("rowstore: stored table has different columns")
)

// TableMeta is stored once per table so a reopened store can detect a
// column table that no longer matches its rows.
type TableMeta struct {
	Name       string    `json:"name"`
	Columns    []string  `json:"columns"`
	PrimaryKey []string  `json:"primary_key"`
	CreatedAt  time.Time `json:"created_at"`
}

type Database struct {
	DataDir string
	kv      *pebble.DB
}

// Open opens or creates the store under dataDir.
func Open(dataDir string) (*Database, error) {
	kv, err := pebble.Open(dataDir, &pebble.Options{Logger: pebbleLogger{slog.Default()}})
	if err != nil {
		return nil, fmt.Errorf("rowstore: open %s: %w", dataDir, err)
	}
	return &Database{DataDir: dataDir, kv: kv}, nil
}

func (db *Database) Close() error {
	if db.kv == nil {
		return ErrDatabaseClosed
	}
	err := db.kv.Close()
	db.kv = nil
	return err
}

func metaKey(name string) []byte {
	return append([]byte("m\x00"), name...)
}

// Table returns the handle for s, registering it on first use.
func (db *Database) Table(s *record.Schema) (*Table, error) {
	if db.kv == nil {
		return nil, ErrDatabaseClosed
	}
	if len(s.PrimaryKey) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPrimaryKey, s.Name)
	}

	meta, err := db.readTableMeta(s.Name)
	switch {
	case errors.Is(err, pebble.ErrNotFound):
		meta = &TableMeta{
			Name:       s.Name,
			Columns:    s.ColumnNames(),
			PrimaryKey: s.PrimaryKey,
			CreatedAt:  time.Now(),
		}
		if err := db.writeTableMeta(meta); err != nil {
			return nil, err
		}
		slog.Info("rowstore: registered table", "table", s.Name, "dir", db.DataDir)
	case err != nil:
		return nil, err
	case !slices.Equal(meta.Columns, s.ColumnNames()) || !slices.Equal(meta.PrimaryKey, s.PrimaryKey):
		return nil, fmt.Errorf("%w: %s", ErrSchemaChanged, s.Name)
	}

	pk := make([]int, len(s.PrimaryKey))
	for i, name := range s.PrimaryKey {
		pk[i], _ = s.Index(name)
	}
	return &Table{
		Name:   s.Name,
		Schema: s,
		db:     db,
		prefix: append([]byte("t\x00"), s.Name+"\x00"...),
		pk:     pk,
	}, nil
}

// Tables lists the metadata of every registered table.
func (db *Database) Tables() ([]TableMeta, error) {
	if db.kv == nil {
		return nil, ErrDatabaseClosed
	}
	lower := []byte("m\x00")
	iter, err := db.kv.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: prefixEnd(lower)})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []TableMeta
	for iter.First(); iter.Valid(); iter.Next() {
		var meta TableMeta
		if err := json.Unmarshal(iter.Value(), &meta); err != nil {
			return nil, fmt.Errorf("rowstore: meta %q: %w", iter.Key(), err)
		}
		out = append(out, meta)
	}
	return out, iter.Error()
}

func (db *Database) writeTableMeta(meta *TableMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return db.kv.Set(metaKey(meta.Name), data, pebble.Sync)
}

func (db *Database) readTableMeta(name string) (*TableMeta, error) {
	data, closer, err := db.kv.Get(metaKey(name))
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var meta TableMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("rowstore: meta %s: %w", name, err)
	}
	return &meta, nil
}

// prefixEnd is the smallest key greater than every key starting with p.
func prefixEnd(p []byte) []byte {
	end := slices.Clone(p)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// pebbleLogger sends pebble's own messages to slog.
type pebbleLogger struct{ l *slog.Logger }

func (p pebbleLogger) Infof(format string, args ...any) {
	p.l.Debug("pebble: " + fmt.Sprintf(format, args...))
}

func (p pebbleLogger) Errorf(format string, args ...any) {
	p.l.Error("pebble: " + fmt.Sprintf(format, args...))
}

func (p pebbleLogger) Fatalf(format string, args ...any) {
	p.l.Error("pebble: " + fmt.Sprintf(format, args...))
	os.Exit(1)
}
