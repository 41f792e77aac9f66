package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novakb/internal/kbcustom"
	"github.com/tuannm99/novakb/internal/record"
	"github.com/tuannm99/novakb/internal/rowio"
	"github.com/tuannm99/novakb/internal/sqlbind"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kbtool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, lvl)

	d, err := cfg.Dialect()
	require.NoError(t, err)
	require.Equal(t, sqlbind.SQLite, d)

	opts, err := cfg.TextOptions(kbcustom.Darrival, nil)
	require.NoError(t, err)
	require.Equal(t, rowio.DelimSpace, opts.Delimiter)
	require.Nil(t, opts.InputColumns)
	require.Nil(t, opts.OutputColumns)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
database:
  driver: postgres
  dsn: "host=localhost dbname=kb"
  table_prefix: "kb."
store:
  dir: /tmp/kb
text:
  delimiter: tab
  lenient: true
  header: true
  columns:
    darrival:
      input: [sta, dtime]
      output: [darid, sta]
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "host=localhost dbname=kb", cfg.Database.DSN)
	require.Equal(t, "/tmp/kb", cfg.Store.Dir)
	require.Equal(t, "kb.darrival", cfg.TableName(kbcustom.Darrival))

	d, err := cfg.Dialect()
	require.NoError(t, err)
	require.Equal(t, sqlbind.Postgres, d)

	opts, err := cfg.TextOptions(kbcustom.Darrival, nil)
	require.NoError(t, err)
	require.Equal(t, rowio.DelimTab, opts.Delimiter)
	require.True(t, opts.Lenient)
	require.True(t, opts.Header)
	require.Equal(t, []string{"sta", "dtime"}, opts.InputColumns)
	require.Equal(t, []string{"darid", "sta"}, opts.OutputColumns)

	// other tables keep canonical order
	opts, err = cfg.TextOptions(kbcustom.Gttable, nil)
	require.NoError(t, err)
	require.Nil(t, opts.InputColumns)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("KBTOOL_LOG_LEVEL", "warn")
	t.Setenv("KBTOOL_STORE_DIR", "/var/kb")

	cfg, err := LoadConfig(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, lvl)
	require.Equal(t, "/var/kb", cfg.Store.Dir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "log:\n  level: loud\n"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "text:\n  delimiter: pipe\n"))
	require.ErrorIs(t, err, rowio.ErrUnknownDelimiter)

	cfg, err := LoadConfig(writeConfig(t, "text:\n  columns:\n    darrival:\n      input: [nope]\n"))
	require.NoError(t, err)
	_, err = cfg.TextOptions(kbcustom.Darrival, nil)
	require.ErrorIs(t, err, record.ErrUnknownField)
}
