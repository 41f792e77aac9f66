package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeTestSchema builds a simple schema used across tests.
func makeTestSchema() *Schema {
	return MustSchema("Sample",
		[]Column{
			Long("id", 1_000_000_000, math.MinInt64),
			Double("score", "%1.3f", math.NaN()),
			String("name", 8),
			String("kind", 4).WithNA("-"),
			Long("Count", 0, -1),
		},
		[]string{"id"},
		[]string{"name", "kind"},
	)
}

func TestNewSchema(t *testing.T) {
	s := makeTestSchema()

	require.Equal(t, "sample", s.Name)
	require.Equal(t, 5, s.NumCols())
	require.Equal(t, []string{"id", "score", "name", "kind", "count"}, s.ColumnNames())
	require.Equal(t, []string{"id"}, s.PrimaryKey)
	require.Equal(t, []string{"name", "kind"}, s.UniqueKey)

	// 8 + 8 + (4+8) + (4+4) + 8
	require.Equal(t, 44, s.MaxBytes())
}

func TestSchema_Lookup(t *testing.T) {
	s := makeTestSchema()

	i, ok := s.Index("COUNT")
	require.True(t, ok)
	require.Equal(t, 4, i)
	require.True(t, s.HasColumn("Name"))
	require.False(t, s.HasColumn("missing"))

	c, err := s.Column("score")
	require.NoError(t, err)
	require.Equal(t, ColFloat64, c.Type)
	require.Equal(t, "%1.3f", c.Format)

	_, err = s.Column("missing")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestSchema_ValidateColumns(t *testing.T) {
	s := makeTestSchema()

	t.Run("subset in any order", func(t *testing.T) {
		idx, err := s.ValidateColumns([]string{"name", "ID"})
		require.NoError(t, err)
		require.Equal(t, []int{2, 0}, idx)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := s.ValidateColumns([]string{"id", "nope"})
		require.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := s.ValidateColumns([]string{"id", "Id"})
		require.Error(t, err)
	})
}

func TestNewSchema_Invalid(t *testing.T) {
	t.Run("duplicate column", func(t *testing.T) {
		_, err := NewSchema("t", []Column{Long("a", 0, -1), Long("A", 0, -1)}, nil, nil)
		require.Error(t, err)
	})

	t.Run("NA of the wrong type", func(t *testing.T) {
		bad := Long("a", 0, -1)
		bad.NA = "x"
		_, err := NewSchema("t", []Column{bad}, nil, nil)
		require.Error(t, err)
	})

	t.Run("NA longer than the column", func(t *testing.T) {
		_, err := NewSchema("t", []Column{String("s", 1).WithNA("--")}, nil, nil)
		require.Error(t, err)
	})

	t.Run("unknown key column", func(t *testing.T) {
		_, err := NewSchema("t", []Column{Long("a", 0, -1)}, []string{"b"}, nil)
		require.ErrorIs(t, err, ErrUnknownField)
	})
}
