package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// History keeps the inspect entries of one table. The file is shared by
// all tables; each line is "<table>\t<entry>".
type History struct {
	path  string
	table string
	lines []string
}

func NewHistory(path, table string) *History {
	return &History{path: path, table: table}
}

// Load reads the last max entries recorded for h.table.
func (h *History) Load(max int) error {
	if h.path == "" {
		return nil
	}
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		table, entry, ok := strings.Cut(sc.Text(), "\t")
		if !ok || table != h.table {
			continue
		}
		if entry = historyEntry(entry); entry == "" {
			continue
		}
		h.lines = append(h.lines, entry)
		if max > 0 && len(h.lines) > max {
			h.lines = h.lines[1:]
		}
	}
	return sc.Err()
}

// Append records one REPL line. Repeating the previous entry is a no-op.
func (h *History) Append(line string) error {
	line = historyEntry(line)
	if line == "" || h.path == "" {
		return nil
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s\t%s\n", h.table, line); err != nil {
		return err
	}
	h.lines = append(h.lines, line)
	return nil
}

func (h *History) Print(w io.Writer, last int) {
	if last <= 0 || last > len(h.lines) {
		last = len(h.lines)
	}
	for i := len(h.lines) - last; i < len(h.lines); i++ {
		fmt.Fprintf(w, "%5d  %s\n", i+1, h.lines[i])
	}
}

// historyEntry reduces a line to one physical line. Whitespace runs
// outside quotes become one space, the way the row tokenizer reads them;
// quoted tokens keep their spaces.
func historyEntry(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	var quote rune
	space := false
	for _, r := range strings.TrimSpace(line) {
		if r == '\r' || r == '\n' {
			r = ' '
		}
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case unicode.IsSpace(r):
			space = true
			continue
		case r == '"' || r == '\'':
			quote = r
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".kbtool_history"
	}
	return filepath.Join(home, ".kbtool_history")
}
