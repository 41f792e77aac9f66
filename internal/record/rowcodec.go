package record

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tuannm99/novakb/internal/alias/bx"
)

// ---- binary row layout ----
// Fields in canonical column order, no header, no padding:
//
//	long   : 8 bytes, big-endian two's complement
//	double : 8 bytes, big-endian IEEE-754 bits
//	string : i32 byte length (BE) + UTF-8 bytes; length -1 => null
//
// A row is never longer than Schema.MaxBytes().

// AppendRow appends the binary encoding of r to dst.
func AppendRow(dst []byte, r *Row) []byte {
	for i, col := range r.schema.Cols {
		v := r.vals[i]
		switch col.Type {
		case ColInt64:
			dst = bx.AppendI64(dst, v.(int64))
		case ColFloat64:
			dst = bx.AppendF64(dst, v.(float64))
		case ColString:
			if v == nil {
				dst = bx.AppendI32(dst, -1)
				continue
			}
			s := v.(string)
			dst = bx.AppendI32(dst, int32(len(s)))
			dst = append(dst, s...)
		}
	}
	return dst
}

func EncodeRow(r *Row) []byte {
	return AppendRow(make([]byte, 0, r.schema.MaxBytes()), r)
}

// DecodeRow decodes one row from the front of buf and reports how many
// bytes it consumed.
func DecodeRow(s *Schema, buf []byte) (*Row, int, error) {
	rd := bytes.NewReader(buf)
	row, err := ReadRow(rd, s)
	if err == io.EOF {
		return nil, 0, fmt.Errorf("%w: empty buffer", ErrBadBuffer)
	}
	if err != nil {
		return nil, 0, err
	}
	return row, len(buf) - rd.Len(), nil
}

func WriteRow(w io.Writer, r *Row) error {
	_, err := w.Write(EncodeRow(r))
	return err
}

// ReadRow reads one binary row. It returns io.EOF only when rd is exhausted
// at a row boundary; a row cut short is ErrBadBuffer.
func ReadRow(rd io.Reader, s *Schema) (*Row, error) {
	row := NewRow(s)
	var scratch [8]byte
	for i, col := range s.Cols {
		n := 8
		if col.Type == ColString {
			n = 4
		}
		if err := readFull(rd, scratch[:n], i == 0, col); err != nil {
			return nil, err
		}

		var err error
		switch col.Type {
		case ColInt64:
			err = row.SetAt(i, bx.I64(scratch[:8]))
		case ColFloat64:
			err = row.SetAt(i, bx.F64(scratch[:8]))
		case ColString:
			l := int(bx.I32(scratch[:4]))
			switch {
			case l == -1:
				err = row.SetAt(i, nil)
			case l < -1 || l > col.MaxLen:
				return nil, fmt.Errorf("%w: %s.%s length %d, max %d", ErrBadBuffer, s.Name, col.Name, l, col.MaxLen)
			default:
				b := make([]byte, l)
				if err := readFull(rd, b, false, col); err != nil {
					return nil, err
				}
				err = row.SetAt(i, string(b))
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return row, nil
}

func readFull(rd io.Reader, b []byte, atBoundary bool, col Column) error {
	_, err := io.ReadFull(rd, b)
	switch {
	case err == nil:
		return nil
	case err == io.EOF && atBoundary:
		return io.EOF
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: truncated at column %q", ErrBadBuffer, col.Name)
	default:
		return err
	}
}
