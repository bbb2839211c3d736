package thunderframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// peopleTable builds:
//
//	id: 1 2 3
//	person: { name: a b c; address: { city: x y z; zip: 10 20 30 } }
//	tags: [red blue] [] [green]
func peopleTable(t *testing.T) *Table {
	t.Helper()
	address, err := GroupOf("address",
		ValueColumnOf("city", "x", "y", "z"),
		ValueColumnOf("zip", 10, 20, 30),
	)
	require.NoError(t, err)
	person, err := GroupOf("person", ValueColumnOf("name", "a", "b", "c"), address)
	require.NoError(t, err)
	tags := NewValueColumn("tags", []any{[]any{"red", "blue"}, []any{}, []any{"green"}})
	return MustFromColumns(ValueColumnOf("id", 1, 2, 3), person, tags)
}

// valuesAt reads the value column at path.
func valuesAt(t *testing.T, tbl *Table, names ...string) []any {
	t.Helper()
	c, err := tbl.Get(PathOf(names...))
	require.NoError(t, err)
	vc, ok := c.(*ValueColumn)
	require.Truef(t, ok, "%v is a %s column", names, c.Kind())
	return vc.Values()
}

// namesAt lists the children of the group at path, or the top level.
func namesAt(t *testing.T, tbl *Table, names ...string) []string {
	t.Helper()
	if len(names) == 0 {
		return tbl.ColumnNames()
	}
	c, err := tbl.Get(PathOf(names...))
	require.NoError(t, err)
	g, ok := c.(*GroupColumn)
	require.True(t, ok)
	return g.Table().ColumnNames()
}

func TestFromColumns(t *testing.T) {
	tests := []struct {
		name    string
		cols    []Column
		wantErr error
		rows    int
	}{
		{name: "empty", rows: 0},
		{
			name: "valid",
			cols: []Column{ValueColumnOf("a", 1, 2), ValueColumnOf("b", "x", "y")},
			rows: 2,
		},
		{
			name:    "duplicate names",
			cols:    []Column{ValueColumnOf("a", 1), ValueColumnOf("a", 2)},
			wantErr: ErrNameCollision,
		},
		{
			name:    "length mismatch",
			cols:    []Column{ValueColumnOf("a", 1, 2), ValueColumnOf("b", 1)},
			wantErr: ErrLengthMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := FromColumns(tt.cols...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, tbl.NumRows())
			assert.Equal(t, len(tt.cols), tbl.NumColumns())
		})
	}
}

func TestTable_Get(t *testing.T) {
	tbl := peopleTable(t)

	c, err := tbl.Get(PathOf("person", "address", "zip"))
	require.NoError(t, err)
	assert.Equal(t, 20, c.Get(1))

	_, err = tbl.Get(PathOf("person", "adress"))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), `did you mean "address"`)

	_, err = tbl.Get(nil)
	require.ErrorIs(t, err, ErrInvalidPath)
}

func TestTable_Rows(t *testing.T) {
	tbl := peopleTable(t)
	var names []any
	for _, r := range tbl.Rows() {
		v, err := r.GetPath(PathOf("person", "name"))
		require.NoError(t, err)
		names = append(names, v)
	}
	assert.Equal(t, []any{"a", "b", "c"}, names)

	m, err := tbl.Row(2).ToMap()
	require.NoError(t, err)
	assert.Equal(t, 3, m["id"])
	assert.Equal(t, "z", m["person"].(map[string]any)["address"].(map[string]any)["city"])
	assert.Panics(t, func() { tbl.Row(3) })
}

func TestTable_TakeHeadFilter(t *testing.T) {
	tbl := peopleTable(t)

	taken, err := tbl.Take([]int{2, 0, -1})
	require.NoError(t, err)
	assert.Equal(t, []any{3, 1, nil}, valuesAt(t, taken, "id"))
	assert.Equal(t, []any{"z", "x", nil}, valuesAt(t, taken, "person", "address", "city"))
	assert.True(t, taken.Column("id").Type().Nullable)

	_, err = tbl.Take([]int{3})
	require.ErrorIs(t, err, ErrLengthMismatch)

	assert.Equal(t, []any{1, 2}, valuesAt(t, tbl.Head(2), "id"))
	assert.Equal(t, 3, tbl.Head(10).NumRows())

	odd := tbl.Filter(func(r Row) bool {
		v, _ := r.Get("id")
		return v.(int)%2 == 1
	})
	assert.Equal(t, []any{1, 3}, valuesAt(t, odd, "id"))
}

func TestConcat(t *testing.T) {
	g1, err := GroupOf("g", ValueColumnOf("x", 1))
	require.NoError(t, err)
	g2, err := GroupOf("g", ValueColumnOf("y", "b"))
	require.NoError(t, err)
	a := MustFromColumns(ValueColumnOf("id", 1), g1)
	b := MustFromColumns(ValueColumnOf("id", 2), g2, ValueColumnOf("extra", true))

	cat, err := Concat(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.NumRows())
	assert.Equal(t, []string{"id", "g", "extra"}, cat.ColumnNames())
	assert.Equal(t, []string{"x", "y"}, namesAt(t, cat, "g"))
	assert.Equal(t, []any{1, nil}, valuesAt(t, cat, "g", "x"))
	assert.Equal(t, []any{nil, "b"}, valuesAt(t, cat, "g", "y"))
	assert.Equal(t, []any{nil, true}, valuesAt(t, cat, "extra"))
	assert.True(t, cat.Column("extra").Type().Nullable)

	_, err = Concat(a, MustFromColumns(ValueColumnOf("g", 1)))
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestInferType(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   string
	}{
		{name: "ints", values: []any{1, 2}, want: "Int"},
		{name: "nullable", values: []any{1, nil}, want: "Int?"},
		{name: "numbers", values: []any{1, 2.5}, want: "Number"},
		{name: "mixed", values: []any{1, "a"}, want: "Any"},
		{name: "only nils", values: []any{nil}, want: "Any?"},
		{name: "lists", values: []any{[]any{"a"}, []any{}, []any{"b"}}, want: "List<String>"},
		{name: "lists with nil", values: []any{[]any{1, nil}}, want: "List<Int?>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferType(tt.values).String())
		})
	}
}
