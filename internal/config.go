package internal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/tuannm99/novakb/internal/record"
	"github.com/tuannm99/novakb/internal/rowio"
	"github.com/tuannm99/novakb/internal/sqlbind"
)

// EnvPrefix prefixes environment overrides, e.g. KBTOOL_DATABASE_DSN.
const EnvPrefix = "KBTOOL"

// ColumnLists overrides the text projection of one table.
type ColumnLists struct {
	Input  []string `mapstructure:"input"`
	Output []string `mapstructure:"output"`
}

type KBConfig struct {
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Database struct {
		Driver      string `mapstructure:"driver"`
		DSN         string `mapstructure:"dsn"`
		TablePrefix string `mapstructure:"table_prefix"`
	} `mapstructure:"database"`

	Store struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"store"`

	Text struct {
		Delimiter string                 `mapstructure:"delimiter"`
		Lenient   bool                   `mapstructure:"lenient"`
		Header    bool                   `mapstructure:"header"`
		Columns   map[string]ColumnLists `mapstructure:"columns"`
	} `mapstructure:"text"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.table_prefix", "")
	v.SetDefault("store.dir", "./data/kbstore")
	v.SetDefault("text.delimiter", "space")
	v.SetDefault("text.lenient", false)
	v.SetDefault("text.header", false)
}

// LoadConfig reads the YAML file at path. An empty path uses the defaults.
// KBTOOL_* environment variables override both.
func LoadConfig(path string) (*KBConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg KBConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := cfg.LogLevel(); err != nil {
		return nil, err
	}
	if _, err := rowio.ParseDelimiter(cfg.Text.Delimiter); err != nil {
		return nil, fmt.Errorf("config text.delimiter: %w", err)
	}
	return &cfg, nil
}

func (c *KBConfig) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("config log.level: %w", err)
	}
	return lvl, nil
}

func (c *KBConfig) Dialect() (sqlbind.Dialect, error) {
	return sqlbind.ParseDialect(c.Database.Driver)
}

// TableName is the database table that holds rows of s.
func (c *KBConfig) TableName(s *record.Schema) string {
	return c.Database.TablePrefix + s.Name
}

// TextOptions resolves the text settings for s. Column lists are validated
// against s here so later reads and writes cannot fail on them.
func (c *KBConfig) TextOptions(s *record.Schema, logger *slog.Logger) (rowio.TextOptions, error) {
	delim, err := rowio.ParseDelimiter(c.Text.Delimiter)
	if err != nil {
		return rowio.TextOptions{}, err
	}
	opts := rowio.TextOptions{
		Delimiter: delim,
		Header:    c.Text.Header,
		Lenient:   c.Text.Lenient,
		Logger:    logger,
	}
	if cols, ok := c.Text.Columns[s.Name]; ok {
		if len(cols.Input) > 0 {
			if _, err := s.ValidateColumns(cols.Input); err != nil {
				return rowio.TextOptions{}, fmt.Errorf("config text.columns.%s.input: %w", s.Name, err)
			}
			opts.InputColumns = cols.Input
		}
		if len(cols.Output) > 0 {
			if _, err := s.ValidateColumns(cols.Output); err != nil {
				return rowio.TextOptions{}, fmt.Errorf("config text.columns.%s.output: %w", s.Name, err)
			}
			opts.OutputColumns = cols.Output
		}
	}
	return opts, nil
}
