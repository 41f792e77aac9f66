package rowio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pierrec/lz4"

	"github.com/tuannm99/novakb/internal/record"
)

// BinaryOptions controls the framing of a binary row file.
type BinaryOptions struct {
	// Compress wraps the records in an lz4 frame.
	Compress bool
}

// WriteBinary writes rows of s back to back.
func WriteBinary(w io.Writer, s *record.Schema, rows []*record.Row, opts BinaryOptions) error {
	var zw *lz4.Writer
	if opts.Compress {
		zw = lz4.NewWriter(w)
		w = zw
	}
	bw := bufio.NewWriter(w)

	var buf []byte
	for i, row := range rows {
		if row.Schema() != s {
			return fmt.Errorf("%s row %d: %w: row is %s", s.Name, i, record.ErrSchemaMismatch, row.Schema().Name)
		}
		buf = record.AppendRow(buf[:0], row)
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if zw != nil {
		return zw.Close()
	}
	return nil
}

// ScanBinary decodes records until r is exhausted and calls fn for each.
func ScanBinary(r io.Reader, s *record.Schema, opts BinaryOptions, fn func(i int, row *record.Row) error) error {
	if opts.Compress {
		r = lz4.NewReader(r)
	}
	br := bufio.NewReader(r)

	for i := 0; ; i++ {
		row, err := record.ReadRow(br, s)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s record %d: %w", s.Name, i, err)
		}
		if err := fn(i, row); err != nil {
			return err
		}
	}
}

// ReadBinary collects every record of r. On error the rows decoded so far
// are returned with it.
func ReadBinary(r io.Reader, s *record.Schema, opts BinaryOptions) ([]*record.Row, error) {
	var rows []*record.Row
	err := ScanBinary(r, s, opts, func(_ int, row *record.Row) error {
		rows = append(rows, row)
		return nil
	})
	return rows, err
}
