package thunderframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	tbl, err := peopleTable(t).Add(ordersTable(t).Column("items"))
	require.NoError(t, err)

	s := tbl.Schema()
	want := `id: Int
person: {
  name: String
  address: {
    city: String
    zip: Int
  }
}
tags: List<String>
items: [
  sku: String
  qty: Int
]
`
	assert.Equal(t, want, s.String())

	zip, ok := s.Lookup(PathOf("person", "address", "zip"))
	require.True(t, ok)
	assert.Equal(t, PathOf("person", "address", "zip"), zip.Path)
	assert.Equal(t, KindValue, zip.Kind)
	assert.True(t, zip.Type.IsNumber())

	_, ok = s.Lookup(PathOf("person", "zip"))
	assert.False(t, ok)
}

func TestAccessor(t *testing.T) {
	tbl := peopleTable(t)
	zip := NewAccessor[int]("person", "address", "zip")
	city := NewAccessor[string]("person", "address", "city")

	values, err := zip.Values(tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, values)

	v, err := city.Get(tbl.Row(1))
	require.NoError(t, err)
	assert.Equal(t, "y", v)

	out, err := tbl.Select(city.Selector())
	require.NoError(t, err)
	assert.Equal(t, []string{"city"}, out.ColumnNames())

	_, err = NewAccessor[string]("id").Values(tbl)
	require.ErrorIs(t, err, ErrTypeMismatch)

	taken, err := tbl.Take([]int{-1})
	require.NoError(t, err)
	missing, err := zip.Get(taken.Row(0))
	require.NoError(t, err)
	assert.Zero(t, missing)
}
