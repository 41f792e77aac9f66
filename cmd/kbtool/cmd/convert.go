package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <table> <in> <out>",
	Short: "Convert a row file between text and binary",
	Long: `Convert a row file between text and binary. Use - for stdin or stdout.

Example:
  kbtool convert darrival darrival.txt darrival.bin --from text --to binary --lz4`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		compress, _ := cmd.Flags().GetBool("lz4")
		if err := checkFormat(from); err != nil {
			return err
		}
		if err := checkFormat(to); err != nil {
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
		rows, err := readRows(in, s, from, compress && from == formatBinary)
		if err != nil {
			return err
		}

		out, err := openOutput(args[2], cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := writeRows(out, s, rows, to, compress && to == formatBinary); err != nil {
			_ = out.Close()
			return err
		}
		slog.Info("converted", "table", s.Name, "rows", len(rows), "from", from, "to", to)
		return out.Close()
	},
}

func init() {
	convertCmd.Flags().String("from", formatText, "input format (text or binary)")
	convertCmd.Flags().String("to", formatBinary, "output format (text or binary)")
	convertCmd.Flags().Bool("lz4", false, "binary side is lz4 compressed")
	rootCmd.AddCommand(convertCmd)
}
