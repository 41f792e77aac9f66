package rowstore

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/tuannm99/novakb/internal/alias/bx"
	"github.com/tuannm99/novakb/internal/record"
)

// Table stores the rows of one schema. Rows are unique by primary key and
// scan in primary-key order.
type Table struct {
	Name   string
	Schema *record.Schema

	db     *Database
	prefix []byte
	pk     []int
}

// key builds <prefix><pk fields> with order-preserving encodings.
func (t *Table) key(row *record.Row) []byte {
	k := bytes.Clone(t.prefix)
	for _, i := range t.pk {
		switch v := row.At(i).(type) {
		case int64:
			k = bx.AppendKeyI64(k, v)
		case float64:
			k = bx.AppendKeyF64(k, v)
		case string:
			k = append(k, 1)
			k = appendKeyString(k, v)
		default: // null string sorts first
			k = append(k, 0)
		}
	}
	return k
}

// appendKeyString escapes 0x00 as 0x00 0xff and terminates with 0x00 0x01.
func appendKeyString(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			dst = append(dst, 0, 0xff)
			continue
		}
		dst = append(dst, s[i])
	}
	return append(dst, 0, 1)
}

// keyOf validates primary-key values the way a setter would.
func (t *Table) keyOf(pk []any) ([]byte, error) {
	if len(pk) != len(t.pk) {
		return nil, fmt.Errorf("%w: %s wants %d, got %d", ErrKeyArity, t.Name, len(t.pk), len(pk))
	}
	row := record.NewRow(t.Schema)
	for j, i := range t.pk {
		if err := row.SetAt(i, pk[j]); err != nil {
			return nil, err
		}
	}
	return t.key(row), nil
}

func (t *Table) kv() (*pebble.DB, error) {
	if t.db.kv == nil {
		return nil, ErrDatabaseClosed
	}
	return t.db.kv, nil
}

// Put inserts row or replaces the row with the same primary key.
func (t *Table) Put(row *record.Row) error {
	return t.PutAll([]*record.Row{row})
}

// PutAll writes rows in one atomic batch.
func (t *Table) PutAll(rows []*record.Row) error {
	kv, err := t.kv()
	if err != nil {
		return err
	}
	b := kv.NewBatch()
	defer b.Close()

	for i, row := range rows {
		if row.Schema() != t.Schema {
			return fmt.Errorf("%s row %d: %w: row is %s", t.Name, i, record.ErrSchemaMismatch, row.Schema().Name)
		}
		if err := b.Set(t.key(row), record.EncodeRow(row), nil); err != nil {
			return err
		}
	}
	return b.Commit(pebble.Sync)
}

// Get reads the row with the given primary-key values.
func (t *Table) Get(pk ...any) (*record.Row, error) {
	kv, err := t.kv()
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(pk)
	if err != nil {
		return nil, err
	}

	data, closer, err := kv.Get(k)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s %v", ErrRowNotFound, t.Name, pk)
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// DecodeRow copies out of data, which pebble reclaims on Close.
	row, _, err := record.DecodeRow(t.Schema, data)
	return row, err
}

func (t *Table) Delete(pk ...any) error {
	if _, err := t.Get(pk...); err != nil {
		return err
	}
	k, _ := t.keyOf(pk)
	return t.db.kv.Delete(k, pebble.Sync)
}

// Scan calls fn for every row in primary-key order.
func (t *Table) Scan(fn func(row *record.Row) error) error {
	kv, err := t.kv()
	if err != nil {
		return err
	}
	iter, err := kv.NewIter(&pebble.IterOptions{
		LowerBound: t.prefix,
		UpperBound: prefixEnd(t.prefix),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		row, _, err := record.DecodeRow(t.Schema, iter.Value())
		if err != nil {
			return fmt.Errorf("%s key %x: %w", t.Name, iter.Key(), err)
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (t *Table) Count() (int, error) {
	n := 0
	err := t.Scan(func(*record.Row) error {
		n++
		return nil
	})
	return n, err
}
