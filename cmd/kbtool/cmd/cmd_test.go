package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tuannm99/novakb/internal/kbcustom"
	"github.com/tuannm99/novakb/internal/sqlbind"
)

const darrivalLine = "100 5 7 ANMO 12.34500 S-P 45.123 iasp91 10.50 1.20 -999.00 i analyst1 -1\n"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSchemasCommand(t *testing.T) {
	out, err := run(t, "schemas")
	require.NoError(t, err)
	assert.Contains(t, out, "darrival")
	assert.Contains(t, out, "142")
	assert.Contains(t, out, "search_link")
}

func TestDescribeCommand(t *testing.T) {
	out, err := run(t, "describe", "Darrival")
	require.NoError(t, err)

	var doc tableDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, kbcustom.SchemaName, doc.Schema)
	assert.Equal(t, "darrival", doc.Name)
	assert.Equal(t, 142, doc.MaxBytes)
	require.Len(t, doc.Columns, 14)
	assert.Equal(t, columnDoc{Name: "sta", Type: "string", Format: "%s", MaxLen: 6, NA: "null"}, doc.Columns[3])
	assert.Equal(t, columnDoc{Name: "dtime", Type: "double", Format: "%1.5f", NA: "NaN"}, doc.Columns[4])

	_, err = run(t, "describe", "origin")
	require.ErrorIs(t, err, kbcustom.ErrUnknownTable)
}

func TestConvertCommand_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "in.txt")
	bin := filepath.Join(dir, "out.bin")
	back := filepath.Join(dir, "back.txt")
	require.NoError(t, os.WriteFile(txt, []byte(darrivalLine), 0o644))

	_, err := run(t, "convert", "darrival", txt, bin, "--from", "text", "--to", "binary", "--lz4")
	require.NoError(t, err)
	_, err = run(t, "convert", "darrival", bin, back, "--from", "binary", "--to", "text", "--lz4")
	require.NoError(t, err)

	got, err := os.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, darrivalLine, string(got))

	_, err = run(t, "convert", "darrival", txt, bin, "--from", "csv", "--to", "binary", "--lz4=false")
	require.Error(t, err)
}

func TestStoreCommands(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(txt, []byte(darrivalLine), 0o644))
	t.Setenv("KBTOOL_STORE_DIR", filepath.Join(dir, "store"))

	out, err := run(t, "store", "put", "darrival", txt, "--from", "text", "--lz4=false")
	require.NoError(t, err)
	assert.Contains(t, out, "1 rows stored")

	out, err = run(t, "store", "get", "darrival", "100")
	require.NoError(t, err)
	assert.Equal(t, darrivalLine, out)

	out, err = run(t, "store", "scan", "darrival", "--to", "text", "--lz4=false")
	require.NoError(t, err)
	assert.Equal(t, darrivalLine, out)

	_, err = run(t, "store", "delete", "darrival", "100")
	require.NoError(t, err)
	_, err = run(t, "store", "get", "darrival", "100")
	require.Error(t, err)
}

func TestLoadAndDump_SQLite(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "kb.db")
	t.Setenv("KBTOOL_DATABASE_DRIVER", "sqlite")
	t.Setenv("KBTOOL_DATABASE_DSN", dsn)

	// load expects the table to exist
	db, err := sqlbind.Open(sqlbind.SQLite, dsn)
	require.NoError(t, err)
	_, err = db.Exec(`create table darrival (darid integer, orid integer, evid integer, sta text,
		dtime real, dphase text, delta real, vmodel text, darrival_amp real, per real,
		logat real, qual text, auth text, commid integer, lddate timestamp)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	txt := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(txt, []byte(darrivalLine), 0o644))

	out, err := run(t, "load", "darrival", txt, "--from", "text", "--lz4=false", "--no-commit=false")
	require.NoError(t, err)
	assert.Contains(t, out, "1 rows loaded")

	out, err = run(t, "dump", "darrival", "--to", "text", "--where", "", "--query", "", "--lz4=false")
	require.NoError(t, err)
	assert.Equal(t, darrivalLine, out)

	out, err = run(t, "dump", "darrival", "--to", "sql", "--where", "darid = 100", "--query", "", "--lz4=false")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "insert into darrival (darid, orid"), out)
	assert.Contains(t, out, "'ANMO'")
}

func TestInspectSession(t *testing.T) {
	sess := &inspectSession{schema: kbcustom.Darrival}
	var out bytes.Buffer

	require.False(t, sess.handle(&out, "#sta dtime"))
	require.Equal(t, []string{"sta", "dtime"}, sess.cols)

	require.False(t, sess.handle(&out, "ANMO 1.5"))
	assert.Contains(t, out.String(), "sta")
	assert.Contains(t, out.String(), "ANMO")
	assert.Contains(t, out.String(), "1.50000")
	assert.Contains(t, out.String(), "(na)")
	assert.Contains(t, out.String(), "binary ")

	out.Reset()
	require.False(t, sess.handle(&out, "ANMO"))
	assert.Contains(t, out.String(), "error:")

	out.Reset()
	require.False(t, sess.handle(&out, "#sta nope"))
	assert.Contains(t, out.String(), "error:")
	require.Equal(t, []string{"sta", "dtime"}, sess.cols)

	out.Reset()
	require.False(t, sess.handle(&out, `\reset`))
	assert.Equal(t, "#darid orid evid sta dtime dphase delta vmodel darrival_amp per logat qual auth commid\n", out.String())

	require.True(t, sess.handle(&out, `\q`))
}

func TestParseKey(t *testing.T) {
	pk, err := parseKey(kbcustom.Darrival, []string{"42"})
	require.NoError(t, err)
	require.Equal(t, []any{int64(42)}, pk)

	_, err = parseKey(kbcustom.Darrival, []string{"x"})
	require.Error(t, err)
	_, err = parseKey(kbcustom.Darrival, []string{"1", "2"})
	require.Error(t, err)
}

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hist")
	h := NewHistory(path, "darrival")
	require.NoError(t, h.Load(10))
	require.NoError(t, h.Append("  #sta   dtime "))
	require.NoError(t, h.Append(""))
	require.NoError(t, h.Append("ANMO\t1.5"))
	require.NoError(t, h.Append("ANMO 1.5"))
	require.NoError(t, h.Append("ANMO  'a  b'\n 1.5"))

	other := NewHistory(path, "gttable")
	require.NoError(t, other.Append("1 2"))

	h2 := NewHistory(path, "darrival")
	require.NoError(t, h2.Load(2))
	require.Equal(t, []string{"ANMO 1.5", "ANMO 'a  b' 1.5"}, h2.lines)

	var out bytes.Buffer
	h.Print(&out, 0)
	assert.Equal(t, "    1  #sta dtime\n    2  ANMO 1.5\n    3  ANMO 'a  b' 1.5\n", out.String())

	other = NewHistory(path, "gttable")
	require.NoError(t, other.Load(0))
	require.Equal(t, []string{"1 2"}, other.lines)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(raw), "\n"))
}

