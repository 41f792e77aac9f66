package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tuannm99/novakb/internal/record"
)

// inspectSession holds the column projection of one inspect REPL.
type inspectSession struct {
	schema *record.Schema
	cols   []string
	hist   *History
}

const inspectHelp = `meta commands:
  \q | quit | exit       quit
  \cols                  print the active input columns
  \reset                 go back to canonical column order
  \history               print history
  \help                  show help

#c1 c2 ...               set the input columns for the next lines
anything else            is parsed as one text row`

// handle runs one REPL line and reports whether the session should end.
func (s *inspectSession) handle(w io.Writer, line string) (quit bool) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false
	case line == `\q` || line == "quit" || line == "exit":
		return true
	case line == `\help`:
		fmt.Fprintln(w, inspectHelp)
	case line == `\cols`:
		fmt.Fprintln(w, record.HeaderLine(s.columns()))
	case line == `\reset`:
		s.cols = nil
		fmt.Fprintln(w, record.HeaderLine(s.columns()))
	case line == `\history`:
		if s.hist != nil {
			s.hist.Print(w, 50)
		}
	case strings.HasPrefix(line, `\`):
		fmt.Fprintf(w, "unknown command: %s\n", line)
	case strings.HasPrefix(line, "#"):
		names, _ := record.ParseHeader(line)
		if len(names) == 0 {
			fmt.Fprintln(w, "error: empty column list")
			break
		}
		if _, err := s.schema.ValidateColumns(names); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			break
		}
		s.cols = names
	default:
		row, err := record.ParseLine(s.schema, line, s.cols)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			break
		}
		printRow(w, row)
	}
	return false
}

func (s *inspectSession) columns() []string {
	if s.cols == nil {
		return s.schema.ColumnNames()
	}
	return s.cols
}

// printRow prints one field per line, marking fields at NA.
func printRow(w io.Writer, row *record.Row) {
	s := row.Schema()
	width := 0
	for _, c := range s.Cols {
		width = max(width, len(c.Name))
	}
	fields, err := record.FormatFields(row, nil)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	for i, c := range s.Cols {
		na, _ := row.IsNA(c.Name)
		mark := ""
		if na {
			mark = "  (na)"
		}
		fmt.Fprintf(w, "%-*s  %-6s  %s%s\n", width, c.Name, c.Type, strings.TrimSpace(fields[i]), mark)
	}
	fmt.Fprintf(w, "binary %d/%d bytes, hash %016x\n", len(record.EncodeRow(row)), s.MaxBytes(), row.Hash())
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <table>",
	Short: "Parse text rows interactively and show their fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := lookupTable(args[0])
		if err != nil {
			return err
		}
		histPath, _ := cmd.Flags().GetString("history")
		histMax, _ := cmd.Flags().GetInt("history-max")

		h := NewHistory(histPath, s.Name)
		_ = h.Load(histMax)

		opts, err := cfg.TextOptions(s, nil)
		if err != nil {
			return err
		}
		sess := &inspectSession{schema: s, cols: opts.InputColumns, hist: h}

		prompt := s.Name + "> "
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          prompt,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
			Stdout:          cmd.OutOrStdout(),
		})
		if err != nil {
			return fmt.Errorf("readline: %w", err)
		}
		defer func() { _ = rl.Close() }()

		for _, line := range h.lines {
			_ = rl.SaveHistory(line)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, `type \help for help`)
		for {
			line, err := rl.Readline()
			if err == readline.ErrInterrupt {
				continue
			}
			if err != nil {
				// EOF
				fmt.Fprintln(out)
				return nil
			}
			_ = h.Append(line)
			if sess.handle(out, line) {
				return nil
			}
		}
	},
}

func init() {
	inspectCmd.Flags().String("history", defaultHistoryPath(), "history file path")
	inspectCmd.Flags().Int("history-max", 2000, "max history lines loaded into memory")
	rootCmd.AddCommand(inspectCmd)
}
