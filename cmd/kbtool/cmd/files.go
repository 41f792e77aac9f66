package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/tuannm99/novakb/internal/record"
	"github.com/tuannm99/novakb/internal/rowio"
)

const (
	formatText   = "text"
	formatBinary = "binary"
)

func checkFormat(f string) error {
	if f != formatText && f != formatBinary {
		return fmt.Errorf("unknown format %q (want %s or %s)", f, formatText, formatBinary)
	}
	return nil
}

// openInput opens path for reading; "-" is stdin.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// openOutput creates path for writing; "-" is stdout.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{stdout}, nil
	}
	return os.Create(path)
}

// readRows reads a whole text or binary file of rows of s.
func readRows(r io.Reader, s *record.Schema, format string, compress bool) ([]*record.Row, error) {
	if format == formatBinary {
		return rowio.ReadBinary(r, s, rowio.BinaryOptions{Compress: compress})
	}
	opts, err := cfg.TextOptions(s, nil)
	if err != nil {
		return nil, err
	}
	return rowio.ReadText(r, s, opts)
}

func writeRows(w io.Writer, s *record.Schema, rows []*record.Row, format string, compress bool) error {
	if format == formatBinary {
		return rowio.WriteBinary(w, s, rows, rowio.BinaryOptions{Compress: compress})
	}
	opts, err := cfg.TextOptions(s, nil)
	if err != nil {
		return err
	}
	return rowio.WriteText(w, s, rows, opts)
}
