package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tuannm99/novakb/internal/kbcustom"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the known tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "TABLE\tCOLUMNS\tMAX BYTES\tPRIMARY KEY\n")
		for _, s := range kbcustom.All() {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", s.Name, s.NumCols(), s.MaxBytes(), strings.Join(s.PrimaryKey, ","))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}
