package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tuannm99/novakb/internal/kbcustom"
	"github.com/tuannm99/novakb/internal/record"
)

type columnDoc struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Format string `yaml:"format"`
	MaxLen int    `yaml:"max_len,omitempty"`
	Limit  int64  `yaml:"limit,omitempty"`
	NA     string `yaml:"na"`
}

type tableDoc struct {
	Schema     string      `yaml:"schema"`
	Name       string      `yaml:"name"`
	PrimaryKey []string    `yaml:"primary_key"`
	UniqueKey  []string    `yaml:"unique_key,omitempty"`
	MaxBytes   int         `yaml:"max_bytes"`
	Columns    []columnDoc `yaml:"columns"`
}

func describe(s *record.Schema) tableDoc {
	doc := tableDoc{
		Schema:     kbcustom.SchemaName,
		Name:       s.Name,
		PrimaryKey: s.PrimaryKey,
		UniqueKey:  s.UniqueKey,
		MaxBytes:   s.MaxBytes(),
	}
	for _, c := range s.Cols {
		doc.Columns = append(doc.Columns, columnDoc{
			Name:   c.Name,
			Type:   c.Type.String(),
			Format: c.Format,
			MaxLen: c.MaxLen,
			Limit:  c.Limit,
			NA:     naString(c.NA),
		})
	}
	return doc
}

func naString(na any) string {
	if na == nil {
		return "null"
	}
	return fmt.Sprint(na)
}

var describeCmd = &cobra.Command{
	Use:   "describe <table>",
	Short: "Print the column table of a table as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := lookupTable(args[0])
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(describe(s)); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
