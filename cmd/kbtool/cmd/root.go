package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tuannm99/novakb/internal"
	"github.com/tuannm99/novakb/internal/kbcustom"
	"github.com/tuannm99/novakb/internal/record"
)

// cfg is loaded once before any subcommand runs.
var cfg *internal.KBConfig

var rootCmd = &cobra.Command{
	Use:   "kbtool",
	Short: "Convert, load and inspect NNSA KB Custom table rows",
	Long: `kbtool works with rows of the NNSA KB Custom tables in their text,
binary and database forms.

Configuration is read from --config (YAML) and KBTOOL_* environment
variables, e.g. KBTOOL_DATABASE_DSN.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := internal.LoadConfig(path)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			c.Log.Level = lvl
		}
		level, err := c.LogLevel()
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		cfg = c
		return nil
	},
}

// Execute runs the root command; main.main calls it once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

// lookupTable resolves a table argument.
func lookupTable(name string) (*record.Schema, error) {
	s, err := kbcustom.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w (known: %v)", err, kbcustom.Names())
	}
	return s, nil
}
