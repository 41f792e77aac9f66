package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tuannm99/novakb/internal/record"
	"github.com/tuannm99/novakb/internal/rowstore"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Keep rows in the local keyed store (store.dir)",
}

var storePutCmd = &cobra.Command{
	Use:   "put <table> <file>",
	Short: "Put every row of a file into the store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		compress, _ := cmd.Flags().GetBool("lz4")
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

		return withTable(s, func(t *rowstore.Table) error {
			if err := t.PutAll(rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows stored in %s\n", len(rows), s.Name)
			return nil
		})
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <table> <key>...",
	Short: "Print the row with the given primary key",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := lookupTable(args[0])
		if err != nil {
			return err
		}
		pk, err := parseKey(s, args[1:])
		if err != nil {
			return err
		}
		return withTable(s, func(t *rowstore.Table) error {
			row, err := t.Get(pk...)
			if err != nil {
				return err
			}
			return writeRows(cmd.OutOrStdout(), s, []*record.Row{row}, formatText, false)
		})
	},
}

var storeScanCmd = &cobra.Command{
	Use:   "scan <table>",
	Short: "Print every stored row in primary-key order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetString("to")
		compress, _ := cmd.Flags().GetBool("lz4")
		if err := checkFormat(to); err != nil {
			return err
		}
		s, err := lookupTable(args[0])
		if err != nil {
			return err
		}
		return withTable(s, func(t *rowstore.Table) error {
			var rows []*record.Row
			if err := t.Scan(func(r *record.Row) error {
				rows = append(rows, r)
				return nil
			}); err != nil {
				return err
			}
			return writeRows(cmd.OutOrStdout(), s, rows, to, compress)
		})
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <table> <key>...",
	Short: "Delete the row with the given primary key",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := lookupTable(args[0])
		if err != nil {
			return err
		}
		pk, err := parseKey(s, args[1:])
		if err != nil {
			return err
		}
		return withTable(s, func(t *rowstore.Table) error { return t.Delete(pk...) })
	},
}

func withTable(s *record.Schema, fn func(t *rowstore.Table) error) error {
	db, err := rowstore.Open(cfg.Store.Dir)
	if err != nil {
		return err
	}
	defer db.Close()

	t, err := db.Table(s)
	if err != nil {
		return err
	}
	return fn(t)
}

// parseKey converts primary-key arguments to the column types of s.
func parseKey(s *record.Schema, args []string) ([]any, error) {
	if len(args) != len(s.PrimaryKey) {
		return nil, fmt.Errorf("%s key is %v, got %d values", s.Name, s.PrimaryKey, len(args))
	}
	pk := make([]any, len(args))
	for i, name := range s.PrimaryKey {
		c, _ := s.Column(name)
		var err error
		switch c.Type {
		case record.ColInt64:
			pk[i], err = strconv.ParseInt(args[i], 10, 64)
		case record.ColFloat64:
			pk[i], err = strconv.ParseFloat(args[i], 64)
		default:
			pk[i] = args[i]
		}
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", s.Name, name, err)
		}
	}
	return pk, nil
}

func init() {
	storePutCmd.Flags().String("from", formatText, "input format (text or binary)")
	storePutCmd.Flags().Bool("lz4", false, "binary input is lz4 compressed")
	storeScanCmd.Flags().String("to", formatText, "output format (text or binary)")
	storeScanCmd.Flags().Bool("lz4", false, "compress binary output with lz4")

	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeScanCmd, storeDeleteCmd)
	rootCmd.AddCommand(storeCmd)
}
