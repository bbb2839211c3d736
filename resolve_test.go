package thunderframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathsOf(cols []ColumnWithPath) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Path.String()
	}
	return out
}

func TestResolve(t *testing.T) {
	tbl := peopleTable(t)
	tests := []struct {
		name string
		sel  Selector
		opts []Option
		want []string
	}{
		{name: "nil selects top level", sel: nil, want: []string{`$["id"]`, `$["person"]`, `$["tags"]`}},
		{name: "by nested name", sel: Col("person", "address", "zip"), want: []string{`$["person"]["address"]["zip"]`}},
		{
			name: "union keeps first occurrence",
			sel:  Union{Col("tags"), Col("id"), Col("tags")},
			want: []string{`$["tags"]`, `$["id"]`},
		},
		{
			name: "children",
			sel:  ChildrenOf(Col("person")),
			want: []string{`$["person"]["name"]`, `$["person"]["address"]`},
		},
		{
			name: "at any depth is depth first",
			sel:  AtAnyDepth{},
			want: []string{
				`$["id"]`, `$["person"]`, `$["person"]["name"]`, `$["person"]["address"]`,
				`$["person"]["address"]["city"]`, `$["person"]["address"]["zip"]`, `$["tags"]`,
			},
		},
		{
			name: "max depth",
			sel:  AtAnyDepth{MaxDepth: 2},
			want: []string{`$["id"]`, `$["person"]`, `$["person"]["name"]`, `$["person"]["address"]`, `$["tags"]`},
		},
		{
			name: "below a group",
			sel:  AtAnyDepth{Of: Col("person", "address")},
			want: []string{`$["person"]["address"]["city"]`, `$["person"]["address"]["zip"]`},
		},
		{
			name: "except removes subtrees",
			sel:  Except{From: AtAnyDepth{}, Remove: Col("person")},
			want: []string{`$["id"]`, `$["tags"]`},
		},
		{name: "numbers", sel: ColsAtAnyDepth(IsNumber()), want: []string{`$["id"]`, `$["person"]["address"]["zip"]`}},
		{name: "lists", sel: ColsAtAnyDepth(IsList()), want: []string{`$["tags"]`}},
		{
			name: "glob",
			sel:  ColsAtAnyDepth(NameGlob("*i*")),
			want: []string{`$["id"]`, `$["person"]["address"]["city"]`, `$["person"]["address"]["zip"]`},
		},
		{
			name: "predicate combinators",
			sel:  ColsAtAnyDepth(Or(NameStartsWith("c"), NameEndsWith("ss")), Not(IsGroup())),
			want: []string{`$["person"]["address"]["city"]`},
		},
		{name: "take", sel: Take{From: AtAnyDepth{}, N: 2}, want: []string{`$["id"]`, `$["person"]`}},
		{name: "drop", sel: Drop{From: AllCols(), N: 2}, want: []string{`$["tags"]`}},
		{name: "take last", sel: TakeLast{From: AllCols(), N: 1}, want: []string{`$["tags"]`}},
		{name: "drop last", sel: DropLast{From: AllCols(), N: 5}, want: []string{}},
		{
			name: "wildcard name",
			sel:  Col("person", Wildcard),
			want: []string{`$["person"]["name"]`, `$["person"]["address"]`},
		},
		{
			name: "path pattern",
			sel:  Matching(PathOf(Wildcard, Wildcard, "city")),
			want: []string{`$["person"]["address"]["city"]`},
		},
		{
			name: "roots",
			sel:  Roots(Union{Col("person", "name"), Col("person"), Col("id")}),
			want: []string{`$["person"]`, `$["id"]`},
		},
		{
			name: "allow missing",
			sel:  Cols("id", "missing"),
			opts: []Option{AllowMissing()},
			want: []string{`$["id"]`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := tbl.Resolve(tt.sel, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pathsOf(cols))
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	tbl := peopleTable(t)

	_, err := tbl.Resolve(Cols("id", "missing"))
	require.ErrorIs(t, err, ErrMissingColumn)

	_, err = tbl.Resolve(ChildrenOf(Col("id")))
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = tbl.Resolve(Matching(PathOf("nope", Wildcard)))
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestResolve_GroupsAtAnyDepth(t *testing.T) {
	h, err := GroupOf("h", ValueColumnOf("x", 1))
	require.NoError(t, err)
	g, err := GroupOf("g", h)
	require.NoError(t, err)
	tbl := MustFromColumns(g)

	cols, err := tbl.Resolve(ColsAtAnyDepth(IsGroup()))
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, PathOf("g"), cols[0].Path)
	assert.Equal(t, PathOf("g", "h"), cols[1].Path)
}

func TestResolve_SimplifyIdempotent(t *testing.T) {
	tbl := peopleTable(t)
	selectors := []Selector{
		AtAnyDepth{},
		ColsAtAnyDepth(IsValue()),
		Union{Col("person", "address", "zip"), Col("person", "address"), Col("tags")},
	}
	for _, sel := range selectors {
		once, err := tbl.Resolve(Roots(sel))
		require.NoError(t, err)
		twice, err := tbl.Resolve(Roots(Roots(sel)))
		require.NoError(t, err)
		assert.Equal(t, pathsOf(once), pathsOf(twice))
	}
}

func TestResolve_ByRef(t *testing.T) {
	tbl := peopleTable(t)
	cols, err := tbl.Resolve(Col("person", "address", "city"))
	require.NoError(t, err)

	again, err := tbl.Resolve(Ref(cols[0]))
	require.NoError(t, err)
	assert.Equal(t, pathsOf(cols), pathsOf(again))
}

func TestResolve_IncludeFrames(t *testing.T) {
	items := NewFrameColumn("items", []*Table{
		MustFromColumns(ValueColumnOf("sku", "a", "b")),
		Empty(),
	})
	tbl := MustFromColumns(ValueColumnOf("order", 1, 2), items)

	without, err := tbl.Resolve(AtAnyDepth{})
	require.NoError(t, err)
	assert.Equal(t, []string{`$["order"]`, `$["items"]`}, pathsOf(without))

	with, err := tbl.Resolve(AtAnyDepth{IncludeFrames: true})
	require.NoError(t, err)
	assert.Equal(t, []string{`$["order"]`, `$["items"]`, `$["items"]["sku"]`}, pathsOf(with))
	assert.Equal(t, 2, with[2].Column.Len())
}
