package record

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NAToken is the text form of a null or NA string, and of any field left
// at NA on input.
const NAToken = "-"

// Token is one whitespace-delimited field of a text line.
type Token struct {
	Text   string
	Quoted bool
}

// Tokenize splits line on runs of whitespace. A token that opens with " or '
// runs to the matching quote and may contain whitespace; the quotes are
// dropped.
func Tokenize(line string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(line) {
		r, w := utf8.DecodeRuneInString(line[i:])
		if unicode.IsSpace(r) {
			i += w
			continue
		}

		if r == '"' || r == '\'' {
			end := strings.IndexByte(line[i+1:], byte(r))
			if end < 0 {
				return nil, fmt.Errorf("%w: at offset %d", ErrBadQuote, i)
			}
			end += i + 1
			if end+1 < len(line) {
				if next, _ := utf8.DecodeRuneInString(line[end+1:]); !unicode.IsSpace(next) {
					return nil, fmt.Errorf("%w: text after closing quote at offset %d", ErrBadQuote, end)
				}
			}
			toks = append(toks, Token{Text: line[i+1 : end], Quoted: true})
			i = end + 1
			continue
		}

		start := i
		for i < len(line) {
			r, w = utf8.DecodeRuneInString(line[i:])
			if unicode.IsSpace(r) {
				break
			}
			i += w
		}
		toks = append(toks, Token{Text: line[start:i]})
	}
	return toks, nil
}

// ParseLine decodes one text line whose tokens are the columns named in
// cols, in that order. nil cols means canonical order. Columns not in cols
// stay at NA.
func ParseLine(s *Schema, line string, cols []string) (*Row, error) {
	idx, err := projection(s, cols)
	if err != nil {
		return nil, err
	}
	toks, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(toks) != len(idx) {
		return nil, fmt.Errorf("%w: %s wants %d tokens, got %d", ErrTokenCount, s.Name, len(idx), len(toks))
	}

	row := NewRow(s)
	for k, i := range idx {
		if err := parseToken(row, i, toks[k]); err != nil {
			return nil, err
		}
	}
	return row, nil
}

func parseToken(row *Row, i int, tok Token) error {
	col := row.schema.Cols[i]
	if !tok.Quoted && tok.Text == NAToken {
		row.vals[i] = col.NA
		return nil
	}

	switch col.Type {
	case ColInt64:
		x, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s.%s %q", ErrBadNumber, row.schema.Name, col.Name, tok.Text)
		}
		return row.SetAt(i, x)
	case ColFloat64:
		x, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return fmt.Errorf("%w: %s.%s %q", ErrBadNumber, row.schema.Name, col.Name, tok.Text)
		}
		return row.SetAt(i, x)
	default:
		return row.SetAt(i, tok.Text)
	}
}

// FormatFields renders the columns named in cols (nil = canonical order),
// each with its column format.
func FormatFields(r *Row, cols []string) ([]string, error) {
	idx, err := projection(r.schema, cols)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(idx))
	for k, i := range idx {
		if out[k], err = formatValue(r, i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FormatLine is FormatFields joined by a single space.
func FormatLine(r *Row, cols []string) (string, error) {
	fields, err := FormatFields(r, cols)
	if err != nil {
		return "", err
	}
	return strings.Join(fields, " "), nil
}

func formatValue(r *Row, i int) (string, error) {
	col := r.schema.Cols[i]
	v := r.vals[i]
	if col.Type != ColString {
		return fmt.Sprintf(col.Format, v), nil
	}
	if v == nil {
		return NAToken, nil
	}
	str := v.(string)
	if strings.ContainsAny(str, "\r\n") {
		return "", fmt.Errorf("%w: %s.%s %q holds a line break", ErrUnencodable, r.schema.Name, col.Name, str)
	}
	if !needsQuote(str, col) {
		return fmt.Sprintf(col.Format, str), nil
	}
	switch {
	case !strings.ContainsRune(str, '"'):
		return `"` + str + `"`, nil
	case !strings.ContainsRune(str, '\''):
		return "'" + str + "'", nil
	default:
		return "", fmt.Errorf("%w: %s.%s %q holds both quote characters", ErrUnencodable, r.schema.Name, col.Name, str)
	}
}

// needsQuote reports whether str would not come back unchanged from
// Tokenize as a bare token.
func needsQuote(str string, col Column) bool {
	if str == "" || strings.IndexFunc(str, unicode.IsSpace) >= 0 {
		return true
	}
	// A leading '#' would make the line a header or comment.
	if str[0] == '"' || str[0] == '\'' || str[0] == '#' {
		return true
	}
	// A bare "-" reads back as NA.
	return str == NAToken && col.NA != NAToken
}

// HeaderLine renders a column list as a "#" header.
func HeaderLine(cols []string) string {
	return "#" + strings.Join(cols, " ")
}

// ParseHeader reports whether line is a "#" header and returns the column
// names it lists, split on commas and whitespace.
func ParseHeader(line string) ([]string, bool) {
	rest, ok := strings.CutPrefix(line, "#")
	if !ok {
		return nil, false
	}
	names := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	return names, true
}

func projection(s *Schema, cols []string) ([]int, error) {
	if cols == nil {
		idx := make([]int, s.NumCols())
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	}
	return s.ValidateColumns(cols)
}
