package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tuannm99/novakb/internal/record"
	"github.com/tuannm99/novakb/internal/sqlbind"
)

const formatSQL = "sql"

var dumpCmd = &cobra.Command{
	Use:   "dump <table>",
	Short: "Query rows from the configured database and print them",
	Long: `Query rows from the configured database and print them as text,
binary or literal insert statements.

Example:
  kbtool dump darrival --where "orid = 5" --to sql`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		where, _ := cmd.Flags().GetString("where")
		query, _ := cmd.Flags().GetString("query")
		to, _ := cmd.Flags().GetString("to")
		compress, _ := cmd.Flags().GetBool("lz4")
		if to != formatSQL {
			if err := checkFormat(to); err != nil {
				return err
			}
		}
		s, err := lookupTable(args[0])
		if err != nil {
			return err
		}
		if query == "" {
			query = "select * from " + cfg.TableName(s)
			if where != "" {
				query += " where " + where
			}
		}

		rows, err := dumpRows(cmd.Context(), s, query)
		if err != nil {
			return err
		}
		if to == formatSQL {
			d, _ := cfg.Dialect()
			return writeInsertSQL(cmd.OutOrStdout(), rows, cfg.TableName(s), d)
		}
		return writeRows(cmd.OutOrStdout(), s, rows, to, compress)
	},
}

func dumpRows(ctx context.Context, s *record.Schema, query string) ([]*record.Row, error) {
	d, err := cfg.Dialect()
	if err != nil {
		return nil, err
	}
	db, err := sqlbind.Open(d, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return sqlbind.QueryRows(ctx, db, s, query)
}

func writeInsertSQL(w io.Writer, rows []*record.Row, table string, d sqlbind.Dialect) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		if _, err := fmt.Fprintln(bw, sqlbind.InsertSQL(r, table, d)+";"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func init() {
	dumpCmd.Flags().String("where", "", "where clause for the default query")
	dumpCmd.Flags().String("query", "", "full query; the table columns must come first in canonical order")
	dumpCmd.Flags().String("to", formatText, "output format (text, binary or sql)")
	dumpCmd.Flags().Bool("lz4", false, "compress binary output with lz4")
	rootCmd.AddCommand(dumpCmd)
}
