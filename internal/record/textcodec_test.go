package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	toks, err := Tokenize("  12 \t-  \"a b\" 'say \"hi\"' x\n")
	require.NoError(t, err)
	require.Equal(t, []Token{
		{Text: "12"},
		{Text: "-"},
		{Text: "a b", Quoted: true},
		{Text: `say "hi"`, Quoted: true},
		{Text: "x"},
	}, toks)

	toks, err = Tokenize(`"" a`)
	require.NoError(t, err)
	require.Equal(t, []Token{{Text: "", Quoted: true}, {Text: "a"}}, toks)

	toks, err = Tokenize("   ")
	require.NoError(t, err)
	require.Empty(t, toks)

	// quotes inside a bare token are literal
	toks, err = Tokenize(`it's`)
	require.NoError(t, err)
	require.Equal(t, []Token{{Text: "it's"}}, toks)

	_, err = Tokenize(`a "open`)
	require.ErrorIs(t, err, ErrBadQuote)

	_, err = Tokenize(`"a"b`)
	require.ErrorIs(t, err, ErrBadQuote)
}

func TestParseLine(t *testing.T) {
	s := makeTestSchema()

	r, err := ParseLine(s, "17 2.500 alpha xy 4", nil)
	require.NoError(t, err)
	require.Equal(t, []any{int64(17), 2.5, "alpha", "xy", int64(4)}, r.Values())

	t.Run("dash is NA", func(t *testing.T) {
		r, err := ParseLine(s, "- - - - -", nil)
		require.NoError(t, err)
		require.True(t, r.Equal(NewRow(s)))
	})

	t.Run("quoted dash is a literal", func(t *testing.T) {
		r, err := ParseLine(s, `"-"`, []string{"name"})
		require.NoError(t, err)
		v, ok, _ := r.Str("name")
		require.True(t, ok)
		require.Equal(t, "-", v)
	})

	t.Run("NaN and exponent forms", func(t *testing.T) {
		r, err := ParseLine(s, "NaN", []string{"score"})
		require.NoError(t, err)
		v, _ := r.Float64("score")
		require.True(t, math.IsNaN(v))

		r, err = ParseLine(s, "1.25e+02", []string{"score"})
		require.NoError(t, err)
		v, _ = r.Float64("score")
		require.Equal(t, 125.0, v)
	})

	t.Run("subset keeps other fields at NA", func(t *testing.T) {
		r, err := ParseLine(s, "bob 9", []string{"name", "id"})
		require.NoError(t, err)
		id, _ := r.Int64("id")
		require.Equal(t, int64(9), id)
		na, _ := r.IsNA("score")
		require.True(t, na)
		na, _ = r.IsNA("kind")
		require.True(t, na)
	})

	t.Run("token count", func(t *testing.T) {
		_, err := ParseLine(s, "17 2.5 alpha xy", nil)
		require.ErrorIs(t, err, ErrTokenCount)
		require.ErrorIs(t, err, ErrParse)

		_, err = ParseLine(s, "17 2.5 alpha xy 4 5", nil)
		require.ErrorIs(t, err, ErrTokenCount)
	})

	t.Run("bad numbers", func(t *testing.T) {
		_, err := ParseLine(s, "1.5", []string{"id"})
		require.ErrorIs(t, err, ErrBadNumber)
		_, err = ParseLine(s, "abc", []string{"score"})
		require.ErrorIs(t, err, ErrBadNumber)
	})

	t.Run("setter validation applies", func(t *testing.T) {
		_, err := ParseLine(s, "1000000000", []string{"id"})
		require.ErrorIs(t, err, ErrOutOfRange)
		_, err = ParseLine(s, "toolongname", []string{"name"})
		require.ErrorIs(t, err, ErrTooLong)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := ParseLine(s, "1", []string{"nope"})
		require.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestFormatLine(t *testing.T) {
	s := makeTestSchema()

	r, err := NewRowValues(s, 17, 2.5, "alpha", "xy", 4)
	require.NoError(t, err)

	line, err := FormatLine(r, nil)
	require.NoError(t, err)
	require.Equal(t, "17 2.500 alpha xy 4", line)
	require.Equal(t, line, r.String())

	line, err = FormatLine(r, []string{"name", "id"})
	require.NoError(t, err)
	require.Equal(t, "alpha 17", line)

	line, err = FormatLine(NewRow(s), nil)
	require.NoError(t, err)
	require.Equal(t, "-9223372036854775808 NaN - - -1", line)
}

func TestFormatLine_Quoting(t *testing.T) {
	s := makeTestSchema()

	cases := []struct {
		name string
		val  string
		want string
	}{
		{"empty", "", `""`},
		{"space", "a b", `"a b"`},
		{"leading quote", `"x`, `'"x'`},
		{"dash in null column", "-", `"-"`},
		{"both quotes without space", `a"b'`, `a"b'`},
		{"leading hash", "#BB", `"#BB"`},
		{"inner hash", "B#B", "B#B"},
		{"plain", "ok", "ok"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRow(s)
			require.NoError(t, r.Set("name", tc.val))

			line, err := FormatLine(r, []string{"name"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, line)

			back, err := ParseLine(s, line, []string{"name"})
			require.NoError(t, err)
			v, ok, _ := back.Str("name")
			assert.True(t, ok)
			assert.Equal(t, tc.val, v)
		})
	}

	t.Run("unencodable", func(t *testing.T) {
		r := NewRow(s)
		require.NoError(t, r.Set("name", `a "b' c`))
		_, err := FormatLine(r, []string{"name"})
		require.ErrorIs(t, err, ErrUnencodable)
	})

	t.Run("line break", func(t *testing.T) {
		for _, val := range []string{"a\nb", "a\rb", "a\r\n"} {
			r := NewRow(s)
			require.NoError(t, r.Set("name", val))
			_, err := FormatLine(r, nil)
			require.ErrorIs(t, err, ErrUnencodable, "%q", val)
		}
	})

	t.Run("dash in dash column is NA", func(t *testing.T) {
		r := NewRow(s)
		require.NoError(t, r.Set("kind", "-"))
		line, err := FormatLine(r, []string{"kind"})
		require.NoError(t, err)
		assert.Equal(t, "-", line)
	})
}

func TestTextRoundTrip(t *testing.T) {
	s := makeTestSchema()

	rows := []*Row{NewRow(s)}
	r, err := NewRowValues(s, 999_999_999, -0.125, "a b", "", math.MaxInt64)
	require.NoError(t, err)
	rows = append(rows, r)

	for _, r := range rows {
		line, err := FormatLine(r, nil)
		require.NoError(t, err)
		back, err := ParseLine(s, line, nil)
		require.NoError(t, err)
		require.True(t, r.Equal(back), line)
	}
}

func TestHeader(t *testing.T) {
	require.Equal(t, "#sta dtime", HeaderLine([]string{"sta", "dtime"}))

	cols, ok := ParseHeader("#sta, dtime\tevid")
	require.True(t, ok)
	require.Equal(t, []string{"sta", "dtime", "evid"}, cols)

	cols, ok = ParseHeader("# ")
	require.True(t, ok)
	require.Empty(t, cols)

	_, ok = ParseHeader("sta dtime")
	require.False(t, ok)
}
