// Package rowio reads and writes batches of rows as text lines or as
// back-to-back binary records.
package rowio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/tuannm99/novakb/internal/record"
)

var ErrUnknownDelimiter = errors.New("rowio: unknown delimiter")

// Delimiter separates fields on output. Input always splits on whitespace.
type Delimiter string

const (
	DelimSpace Delimiter = "space"
	DelimTab   Delimiter = "tab"
)

func ParseDelimiter(name string) (Delimiter, error) {
	switch Delimiter(strings.ToLower(strings.TrimSpace(name))) {
	case "", DelimSpace:
		return DelimSpace, nil
	case DelimTab:
		return DelimTab, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDelimiter, name)
}

func (d Delimiter) sep() string {
	if d == DelimTab {
		return "\t"
	}
	return " "
}

// TextOptions is the column projection and formatting of one read or write.
// nil column lists mean the schema's canonical order.
type TextOptions struct {
	InputColumns  []string
	OutputColumns []string
	Delimiter     Delimiter
	// Header makes WriteText start with a "#" line naming OutputColumns.
	Header bool
	// Lenient makes ReadText skip bad lines instead of stopping at the first.
	Lenient bool
	Logger  *slog.Logger
}

func (o TextOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

const maxLineBytes = 1 << 20

// ScanText decodes r line by line and calls fn for every row.
//
// If the first line starts with '#' it names the input columns for the rest
// of this call. Later '#' lines and blank lines are skipped.
func ScanText(r io.Reader, s *record.Schema, opts TextOptions, fn func(lineNo int, row *record.Row) error) error {
	log := opts.logger()
	cols := opts.InputColumns
	if cols != nil {
		if _, err := s.ValidateColumns(cols); err != nil {
			return err
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var multierr *multierror.Error
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		if strings.HasPrefix(line, "#") {
			if lineNo == 1 {
				if names, _ := record.ParseHeader(line); len(names) > 0 {
					if _, err := s.ValidateColumns(names); err != nil {
						return fmt.Errorf("%s line %d: header: %w", s.Name, lineNo, err)
					}
					cols = names
				}
				continue
			}
			log.Debug("skipping comment line", "table", s.Name, "line", lineNo)
			continue
		}
		if line == "" {
			continue
		}

		row, err := record.ParseLine(s, line, cols)
		if err != nil {
			err = fmt.Errorf("%s line %d: %w", s.Name, lineNo, err)
			if !opts.Lenient {
				return err
			}
			log.Warn("skipping bad line", "table", s.Name, "line", lineNo, "err", err)
			multierr = multierror.Append(multierr, err)
			continue
		}
		if err := fn(lineNo, row); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s line %d: read: %w", s.Name, lineNo+1, err)
	}
	return multierr.ErrorOrNil()
}

// ReadText collects every row of r. On error the rows decoded so far are
// returned with it.
func ReadText(r io.Reader, s *record.Schema, opts TextOptions) ([]*record.Row, error) {
	var rows []*record.Row
	err := ScanText(r, s, opts, func(_ int, row *record.Row) error {
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// WriteText writes rows as text lines, after a header line when opts.Header
// is set.
func WriteText(w io.Writer, s *record.Schema, rows []*record.Row, opts TextOptions) error {
	cols := opts.OutputColumns
	if cols == nil {
		cols = s.ColumnNames()
	} else if _, err := s.ValidateColumns(cols); err != nil {
		return err
	}
	sep := opts.Delimiter.sep()

	bw := bufio.NewWriter(w)
	if opts.Header {
		if _, err := bw.WriteString(record.HeaderLine(cols) + "\n"); err != nil {
			return err
		}
	}
	for i, row := range rows {
		if row.Schema() != s {
			return fmt.Errorf("%s row %d: %w: row is %s", s.Name, i, record.ErrSchemaMismatch, row.Schema().Name)
		}
		fields, err := record.FormatFields(row, cols)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", s.Name, i, err)
		}
		if _, err := bw.WriteString(strings.Join(fields, sep) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
