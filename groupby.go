package thunderframe

import (
	"iter"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
)

// GroupedTable is the result of GroupBy: the rows of a table partitioned by
// the values of its key columns. Groups are ordered by the first occurrence
// of their key and keep their rows in table order.
type GroupedTable struct {
	source *Table
	keys   *Table
	rows   [][]int
	groups []*Table
	index  map[string]int
}

// GroupBy partitions the rows of t by the selected key columns. Selected
// groups contribute all their leaf columns to the key. Key columns with the
// same name get a numeric suffix in Keys. Values are compared
// exactly: equal keys must have the same Go type.
func (t *Table) GroupBy(sel Selector, opts ...Option) (*GroupedTable, error) {
	o := newOptions(opts)
	cols, err := resolveWith(t, sel, o)
	if err != nil {
		return nil, err
	}
	cols = simplify(cols)
	leaves := keyLeaves(cols)
	keyCols := columnsOf(leaves)
	rows, err := partition(keyCols, t.rows)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(rows))
	first := make([]int, len(rows))
	for i, r := range rows {
		first[i] = r[0]
		k, _ := rowKey(keyCols, r[0])
		index[k] = i
	}
	gen := newNameGenerator()
	named := make([]Column, len(cols))
	for i, c := range cols {
		named[i] = c.Column
		if name := gen.unique(c.Name()); name != c.Name() {
			named[i] = c.Column.Rename(name)
		}
	}
	keys := newTable(named, t.rows)
	gt := &GroupedTable{
		source: t,
		keys:   keys.take(first, nil),
		rows:   rows,
		groups: make([]*Table, len(rows)),
		index:  index,
	}
	var g errgroup.Group
	g.SetLimit(max(1, o.parallelism))
	for i, r := range rows {
		g.Go(func() error {
			gt.groups[i] = t.take(r, nil)
			return nil
		})
	}
	_ = g.Wait()
	o.logger.Debug("group-by",
		slog.Int("rows_in", t.rows),
		slog.Int("keys", len(leaves)),
		slog.Int("groups", len(rows)))
	return gt, nil
}

// Len returns the number of groups.
func (g *GroupedTable) Len() int { return len(g.rows) }

// Keys returns one row per group holding its key columns.
func (g *GroupedTable) Keys() *Table { return g.keys }

// Key returns the key row of group i.
func (g *GroupedTable) Key(i int) Row { return g.keys.Row(i) }

// Group returns the rows of group i.
func (g *GroupedTable) Group(i int) *Table { return g.groups[i] }

// Indexes returns the source row indexes of group i.
func (g *GroupedTable) Indexes(i int) []int { return slices.Clone(g.rows[i]) }

// Groups iterates over key rows and group tables in group order.
func (g *GroupedTable) Groups() iter.Seq2[Row, *Table] {
	return func(yield func(Row, *Table) bool) {
		for i, t := range g.groups {
			if !yield(g.keys.Row(i), t) {
				return
			}
		}
	}
}

// Lookup returns the group whose key leaf values equal values, given in key
// column order.
func (g *GroupedTable) Lookup(values ...any) (*Table, bool) {
	k, err := ToKey(values...)
	if err != nil {
		return nil, false
	}
	i, ok := g.index[string(k)]
	if !ok {
		return nil, false
	}
	return g.groups[i], true
}

// Count returns the keys with an extra column holding each group's size.
func (g *GroupedTable) Count(name string) (*Table, error) {
	counts := make([]any, len(g.rows))
	for i, r := range g.rows {
		counts[i] = len(r)
	}
	return g.keys.Insert(Path{name}, newValueColumn(name, Type{Kind: TypeInt}, counts))
}

// Aggregate returns the keys with an extra column holding fn applied to each
// group.
func (g *GroupedTable) Aggregate(name string, fn func(*Table) any) (*Table, error) {
	values := make([]any, len(g.groups))
	for i, t := range g.groups {
		values[i] = fn(t)
	}
	return g.keys.Insert(Path{name}, NewValueColumn(name, values))
}

// ToTable returns the keys with an extra frame column holding each group.
func (g *GroupedTable) ToTable(name string) (*Table, error) {
	return g.keys.Insert(Path{name}, NewFrameColumn(name, g.groups))
}

// Concat stacks the groups back into one table, group after group.
func (g *GroupedTable) Concat() *Table {
	all := make([]int, 0, g.source.rows)
	for _, r := range g.rows {
		all = append(all, r...)
	}
	return g.source.take(all, nil)
}
