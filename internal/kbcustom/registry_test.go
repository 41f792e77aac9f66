package kbcustom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novakb/internal/record"
)

func TestMaxBytes(t *testing.T) {
	want := map[string]int{
		"darrival":          142,
		"gttable":           248,
		"modcomptt":         264,
		"nb_env":            148,
		"nnsa_amp_descript": 178,
		"nnsa_amplitude":    175,
		"path_corr":         160,
		"predict_az":        314,
		"predict_sh":        314,
		"search_link":       161,
	}
	require.Len(t, All(), len(want))
	for _, s := range All() {
		assert.Equal(t, want[s.Name], s.MaxBytes(), s.Name)
	}
}

func TestLookup(t *testing.T) {
	s, err := Lookup("Nnsa_Amplitude")
	require.NoError(t, err)
	require.Same(t, NnsaAmplitude, s)

	_, err = Lookup("origin")
	require.ErrorIs(t, err, ErrUnknownTable)

	require.Equal(t, "darrival", Names()[0])
	require.Equal(t, "search_link", Names()[len(Names())-1])
}

func TestEveryLongHasALimit(t *testing.T) {
	for _, s := range All() {
		for _, c := range s.Cols {
			if c.Type != record.ColInt64 {
				continue
			}
			if s == SearchLink && c.Name == "jdate" {
				assert.Equal(t, int64(jdateLimit), c.Limit)
				continue
			}
			assert.Equal(t, int64(idLimit), c.Limit, "%s.%s", s.Name, c.Name)
		}
	}
}

func TestDefaults(t *testing.T) {
	g := record.NewRow(Gttable)

	v, err := g.Get("masterEvid")
	require.NoError(t, err)
	require.Equal(t, int64(math.MinInt64), v)

	v, err = g.Get("nativeoriginname")
	require.NoError(t, err)
	require.Equal(t, "-", v)

	v, err = g.Get("masteroriginname")
	require.NoError(t, err)
	require.Nil(t, v)

	sl := record.NewRow(SearchLink)
	tm, err := sl.Float64("time")
	require.NoError(t, err)
	require.Equal(t, -9999999999.999, tm)

	require.ErrorIs(t, sl.Set("jdate", 100_000_000), record.ErrOutOfRange)
	require.NoError(t, sl.Set("jdate", 2024001))
}

func TestPrimaryKeyEquality(t *testing.T) {
	a := record.NewRow(Darrival)
	b := record.NewRow(Darrival)
	require.NoError(t, a.Set("darid", 10))
	require.NoError(t, b.Set("darid", 10))
	require.NoError(t, b.Set("sta", "TUC"))
	require.NoError(t, b.Set("dtime", 99.0))

	require.True(t, a.EqualPrimaryKey(b))
	require.False(t, a.Equal(b))

	require.NoError(t, b.Set("darid", 11))
	require.False(t, a.EqualPrimaryKey(b))

	// nb_env and path_corr have no unique key
	x, y := record.NewRow(NbEnv), record.NewRow(NbEnv)
	require.False(t, x.EqualUniqueKey(y))
}

func TestDarrivalScenario(t *testing.T) {
	r := record.NewRow(Darrival)
	set := map[string]any{
		"darid": 100, "orid": 5, "evid": 7, "sta": "ANMO", "dtime": 12.345,
		"dphase": "S-P", "delta": 45.123, "vmodel": "iasp91", "darrival_amp": 10.50,
		"per": 1.20, "logat": -999.0, "qual": "i", "auth": "analyst1", "commid": -1,
	}
	for k, v := range set {
		require.NoError(t, r.Set(k, v), k)
	}

	line, err := record.FormatLine(r, nil)
	require.NoError(t, err)
	require.Equal(t, "100 5 7 ANMO 12.34500 S-P 45.123 iasp91 10.50 1.20 -999.00 i analyst1 -1", line)

	back, err := record.ParseLine(Darrival, line, nil)
	require.NoError(t, err)
	require.True(t, r.Equal(back))

	buf := record.EncodeRow(r)
	require.LessOrEqual(t, len(buf), Darrival.MaxBytes())

	dec, n, err := record.DecodeRow(Darrival, buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.True(t, r.Equal(dec))
	for name, v := range set {
		got, err := dec.Get(name)
		require.NoError(t, err)
		switch x := v.(type) {
		case int:
			require.Equal(t, int64(x), got, name)
		default:
			require.Equal(t, v, got, name)
		}
	}
}
