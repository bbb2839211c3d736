package thunderframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordersTable(t *testing.T) *Table {
	t.Helper()
	items := NewFrameColumn("items", []*Table{
		MustFromColumns(ValueColumnOf("sku", "a", "b"), ValueColumnOf("qty", 1, 2)),
		Empty(),
		MustFromColumns(ValueColumnOf("sku", "c"), ValueColumnOf("qty", 5)),
	})
	return MustFromColumns(ValueColumnOf("order", 10, 20, 30), items)
}

func TestExplode_Frame(t *testing.T) {
	tbl := ordersTable(t)

	out, err := tbl.Explode(Col("items"))
	require.NoError(t, err)
	assert.Equal(t, 3, out.NumRows())
	assert.Equal(t, []any{10, 10, 30}, valuesAt(t, out, "order"))
	assert.Equal(t, KindGroup, out.Column("items").Kind())
	assert.Equal(t, []any{"a", "b", "c"}, valuesAt(t, out, "items", "sku"))
	assert.Equal(t, []any{1, 2, 5}, valuesAt(t, out, "items", "qty"))

	kept, err := tbl.Explode(Col("items"), DropEmpty(false))
	require.NoError(t, err)
	assert.Equal(t, 4, kept.NumRows())
	assert.Equal(t, []any{10, 10, 20, 30}, valuesAt(t, kept, "order"))
	assert.Equal(t, []any{"a", "b", nil, "c"}, valuesAt(t, kept, "items", "sku"))
}

func TestExplode_FrameScenario(t *testing.T) {
	items := NewFrameColumn("items", []*Table{
		MustFromColumns(ValueColumnOf("v", 1, 2)),
		MustFromColumns(NewValueColumn("v", []any{})),
	})
	tbl := MustFromColumns(ValueColumnOf("name", "first", "second"), items)

	dropped, err := tbl.Explode(Col("items"), DropEmpty(true))
	require.NoError(t, err)
	assert.Equal(t, 2, dropped.NumRows())
	assert.Equal(t, []any{"first", "first"}, valuesAt(t, dropped, "name"))

	kept, err := tbl.Explode(Col("items"), DropEmpty(false))
	require.NoError(t, err)
	assert.Equal(t, 3, kept.NumRows())
	assert.Equal(t, []any{"first", "first", "second"}, valuesAt(t, kept, "name"))
	assert.Equal(t, []any{1, 2, nil}, valuesAt(t, kept, "items", "v"))
}

func TestExplode_Lists(t *testing.T) {
	tbl := peopleTable(t)

	out, err := tbl.Explode(Col("tags"))
	require.NoError(t, err)
	assert.Equal(t, []any{1, 1, 3}, valuesAt(t, out, "id"))
	assert.Equal(t, []any{"red", "blue", "green"}, valuesAt(t, out, "tags"))
	assert.Equal(t, []any{"x", "x", "z"}, valuesAt(t, out, "person", "address", "city"))
	assert.Equal(t, "String", out.Column("tags").Type().String())

	// The default selection explodes every list and frame column.
	all, err := tbl.Explode(nil, DropEmpty(false))
	require.NoError(t, err)
	assert.Equal(t, []any{"red", "blue", nil, "green"}, valuesAt(t, all, "tags"))
}

func TestExplode_Zip(t *testing.T) {
	tbl := MustFromColumns(
		ValueColumnOf("id", 1, 2),
		NewValueColumn("a", []any{[]any{"x", "y", "z"}, nil}),
		NewValueColumn("b", []any{[]any{10, 20}, "scalar"}),
	)

	out, err := tbl.Explode(Cols("a", "b"), DropEmpty(false))
	require.NoError(t, err)
	assert.Equal(t, []any{1, 1, 2}, valuesAt(t, out, "id"))
	assert.Equal(t, []any{"x", "y", nil}, valuesAt(t, out, "a"))
	assert.Equal(t, []any{10, 20, nil}, valuesAt(t, out, "b"))

	out, err = tbl.Explode(Col("b"))
	require.NoError(t, err)
	assert.Equal(t, []any{10, 20, "scalar"}, valuesAt(t, out, "b"))
}

func TestExplode_ScalarsAreRepeated(t *testing.T) {
	g, err := GroupOf("g",
		NewValueColumn("l", []any{[]any{1, 2, 3}, []any{4}}),
		ValueColumnOf("s", "x", "y"),
	)
	require.NoError(t, err)
	tbl := MustFromColumns(ValueColumnOf("id", 1, 2), NewValueColumn("l", []any{[]any{"a", "b"}, nil}), g)

	tests := []struct {
		name string
		sel  Selector
		ids  []any
	}{
		{name: "group with a scalar child", sel: Col("g"), ids: []any{1, 1, 1, 2}},
		{name: "list with a scalar column", sel: Cols("l", "id"), ids: []any{1, 1}},
		{name: "scalar only", sel: Col("id"), ids: []any{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tbl.Explode(tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.ids, valuesAt(t, out, "id"))
		})
	}

	out, err := tbl.Explode(Col("g"))
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3, 4}, valuesAt(t, out, "g", "l"))
	assert.Equal(t, []any{"x", "x", "x", "y"}, valuesAt(t, out, "g", "s"))
	assert.Equal(t, TypeString, out.Column("g").(*GroupColumn).Table().Column("s").Type().Kind)
}

func TestImplode(t *testing.T) {
	tbl := MustFromColumns(
		ValueColumnOf("k", "a", "b", "a", "a"),
		NewValueColumn("v", []any{1, 2, nil, 3}),
	)

	out, err := tbl.Implode(Col("v"))
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, valuesAt(t, out, "k"))
	assert.Equal(t, []any{[]any{1, nil, 3}, []any{2}}, valuesAt(t, out, "v"))
	assert.Equal(t, "List<Int?>", out.Column("v").Type().String())

	out, err = tbl.Implode(Col("v"), DropNA(true))
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{1, 3}, []any{2}}, valuesAt(t, out, "v"))
	assert.Equal(t, "List<Int>", out.Column("v").Type().String())
}

func TestImplode_GroupBecomesFrame(t *testing.T) {
	tbl := ordersTable(t)
	exploded, err := tbl.Explode(Col("items"))
	require.NoError(t, err)

	imploded, err := exploded.Implode(Col("items"))
	require.NoError(t, err)
	assert.Equal(t, []any{10, 30}, valuesAt(t, imploded, "order"))
	frames, ok := imploded.Column("items").(*FrameColumn)
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, valuesAt(t, frames.Frame(0), "sku"))
	assert.Equal(t, []any{"c"}, valuesAt(t, frames.Frame(1), "sku"))
}

func TestImplode_Frames(t *testing.T) {
	tbl := MustFromColumns(
		ValueColumnOf("k", 1, 1),
		NewFrameColumn("f", []*Table{
			MustFromColumns(ValueColumnOf("x", "a")),
			MustFromColumns(ValueColumnOf("x", "b", "c")),
		}),
	)
	out, err := tbl.Implode(Col("f"))
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())
	assert.Equal(t, []any{"a", "b", "c"}, valuesAt(t, out.Column("f").(*FrameColumn).Frame(0), "x"))

	_, err = tbl.Implode(Col("k"))
	require.ErrorIs(t, err, ErrTypeMismatch, "frame columns cannot be keys")
}

// Explode with DropEmpty(false) keeps an empty list as one missing value, so
// a plain implode turns it into a list holding nil. DropNA(true) restores the
// empty list, but it also drops nils that were inside the original lists;
// only tables whose lists hold no nils survive the round trip exactly.
func TestExplodeImplode_RoundTrip(t *testing.T) {
	tbl := peopleTable(t)

	exploded, err := tbl.Explode(Col("tags"), DropEmpty(false))
	require.NoError(t, err)
	assert.Equal(t, 4, exploded.NumRows())

	plain, err := exploded.Implode(Col("tags"))
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{"red", "blue"}, []any{nil}, []any{"green"}}, valuesAt(t, plain, "tags"))

	imploded, err := exploded.Implode(Col("tags"), DropNA(true))
	require.NoError(t, err)
	assert.Equal(t, tbl.NumRows(), imploded.NumRows())
	assert.Equal(t, valuesAt(t, tbl, "id"), valuesAt(t, imploded, "id"))
	assert.Equal(t, valuesAt(t, tbl, "person", "address", "city"), valuesAt(t, imploded, "person", "address", "city"))
	assert.Equal(t, valuesAt(t, tbl, "tags"), valuesAt(t, imploded, "tags"))
	assert.True(t, tbl.Column("tags").Type().Equal(imploded.Column("tags").Type()))
}
