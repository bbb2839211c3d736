package thunderframe

import (
	"iter"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Table is an immutable, ordered list of equally long columns. Column names
// are unique among siblings at every level of the column tree.
type Table struct {
	columns []Column
	byName  map[string]int
	rows    int
}

// FromColumns validates the columns and builds a table from them. The row
// count is taken from the first column; an empty list gives an empty table.
func FromColumns(cols ...Column) (*Table, error) {
	rows := 0
	if len(cols) > 0 {
		rows = cols[0].Len()
	}
	return fromColumnsWithRows(slices.Clone(cols), rows)
}

// MustFromColumns is FromColumns that panics on invalid input.
func MustFromColumns(cols ...Column) *Table {
	t, err := FromColumns(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return newTable(nil, 0)
}

func fromColumnsWithRows(cols []Column, rows int) (*Table, error) {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, ok := seen[c.Name()]; ok {
			return nil, ErrDuplicateColumn(Path{c.Name()})
		}
		seen[c.Name()] = struct{}{}
		if c.Len() != rows {
			return nil, ErrColumnLength(c.Name(), rows, c.Len())
		}
	}
	return newTable(cols, rows), nil
}

// newTable trusts its input; callers guarantee the invariants.
func newTable(cols []Column, rows int) *Table {
	byName := make(map[string]int, len(cols))
	for i, c := range cols {
		byName[c.Name()] = i
	}
	return &Table{columns: cols, byName: byName, rows: rows}
}

func (t *Table) NumRows() int { return t.rows }

func (t *Table) NumColumns() int { return len(t.columns) }

// Columns returns the top-level columns in order.
func (t *Table) Columns() []Column { return slices.Clone(t.columns) }

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// Column returns the top-level column with the given name, or nil.
func (t *Table) Column(name string) Column {
	idx, ok := t.byName[name]
	if !ok {
		return nil
	}
	return t.columns[idx]
}

// ColumnTry is Column returning ErrMissingColumn instead of nil.
func (t *Table) ColumnTry(name string) (Column, error) {
	if c := t.Column(name); c != nil {
		return c, nil
	}
	return nil, ErrColumnNotFound(Path{name}, t.ColumnNames())
}

func (t *Table) ColumnAt(i int) Column { return t.columns[i] }

// IndexOf returns the position of a top-level column, or -1.
func (t *Table) IndexOf(name string) int {
	if idx, ok := t.byName[name]; ok {
		return idx
	}
	return -1
}

// Get returns the column at path, descending through groups.
func (t *Table) Get(path Path) (Column, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath("get")
	}
	cur := t
	for i, name := range path {
		c := cur.Column(name)
		if c == nil {
			return nil, ErrColumnNotFound(path[:i+1], cur.ColumnNames())
		}
		if i == len(path)-1 {
			return c, nil
		}
		g, ok := c.(*GroupColumn)
		if !ok {
			return nil, ErrColumnNotFound(path, nil)
		}
		cur = g.table
	}
	return nil, ErrColumnNotFound(path, nil)
}

// Row returns a view of row i. It panics if i is out of range, like slice indexing.
func (t *Table) Row(i int) Row {
	if i < 0 || i >= t.rows {
		panic(ErrRowOutOfRange(i, t.rows))
	}
	return &tableRow{table: t, index: i}
}

// Rows iterates over all rows in order.
func (t *Table) Rows() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i := range t.rows {
			if !yield(i, &tableRow{table: t, index: i}) {
				return
			}
		}
	}
}

// Take returns the rows at the given indexes, in that order. Indexes may
// repeat; a negative index produces a row of missing values.
func (t *Table) Take(rows []int) (*Table, error) {
	for _, r := range rows {
		if r >= t.rows {
			return nil, ErrRowOutOfRange(r, t.rows)
		}
	}
	return t.take(rows, nil), nil
}

// Head returns the first n rows.
func (t *Table) Head(n int) *Table {
	n = max(0, min(n, t.rows))
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.take(idx, nil)
}

// Filter keeps the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	idx := make([]int, 0, t.rows)
	for i, r := range t.Rows() {
		if keep(r) {
			idx = append(idx, i)
		}
	}
	return t.take(idx, nil)
}

func (t *Table) take(rows []int, o *options) *Table {
	cols := make([]Column, len(t.columns))
	if o == nil || o.parallelism < 2 || len(cols) < 2 {
		for i, c := range t.columns {
			cols[i] = c.take(rows)
		}
		return newTable(cols, len(rows))
	}
	var g errgroup.Group
	g.SetLimit(o.parallelism)
	for i, c := range t.columns {
		g.Go(func() error {
			cols[i] = c.take(rows)
			return nil
		})
	}
	_ = g.Wait()
	return newTable(cols, len(rows))
}

// withColumns returns a table with the same row count and the given columns.
func (t *Table) withColumns(cols []Column) *Table {
	return newTable(cols, t.rows)
}
