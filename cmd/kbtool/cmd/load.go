package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/tuannm99/novakb/internal/record"
	"github.com/tuannm99/novakb/internal/sqlbind"
)

var loadCmd = &cobra.Command{
	Use:   "load <table> <file>",
	Short: "Insert the rows of a file into the configured database",
	Long: `Insert every row of a text or binary file into the configured
database (database.driver and database.dsn) in one transaction.

Example:
  KBTOOL_DATABASE_DSN=kb.db kbtool load darrival darrival.txt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		compress, _ := cmd.Flags().GetBool("lz4")
		noCommit, _ := cmd.Flags().GetBool("no-commit")
		if err := checkFormat(from); err != nil {
			return err
		}
		s, err := lookupTable(args[0])
		if err != nil {
			return err
		}

		in, err := openInput(args[1], cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer in.Close()
		rows, err := readRows(in, s, from, compress)
		if err != nil {
			return err
		}

		n, err := loadRows(cmd.Context(), s, rows, !noCommit)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d rows loaded into %s\n", n, cfg.TableName(s))
		return nil
	},
}

// loadRows inserts rows in one transaction and commits it when commit is set.
func loadRows(ctx context.Context, s *record.Schema, rows []*record.Row, commit bool) (int, error) {
	d, err := cfg.Dialect()
	if err != nil {
		return 0, err
	}
	db, err := sqlbind.Open(d, cfg.Database.DSN)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	n, err := sqlbind.InsertRows(ctx, tx, d, s, cfg.TableName(s), rows, time.Now())
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if !commit {
		slog.Info("rolling back", "table", s.Name, "rows", n)
		return n, tx.Rollback()
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

func init() {
	loadCmd.Flags().String("from", formatText, "input format (text or binary)")
	loadCmd.Flags().Bool("lz4", false, "binary input is lz4 compressed")
	loadCmd.Flags().Bool("no-commit", false, "roll back instead of committing")
	rootCmd.AddCommand(loadCmd)
}
