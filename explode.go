package thunderframe

import (
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Explode spreads list values and frame cells of the selected columns over
// multiple rows. Other columns repeat their value on each produced row. When
// several columns are selected their collections are zipped: a row produces
// as many rows as its shortest collection holds. A nil cell counts as an
// empty collection and a non-list cell of a list column as a collection of
// one. Selected columns holding no collections are repeated like the rest.
//
// A list column becomes a column of its element type and a frame column
// becomes a group of the frames' columns. Rows with nothing to explode are
// dropped unless DropEmpty(false) is given, in which case they are kept once
// with missing values in the exploded columns.
//
// A nil selector explodes every list and frame column at any depth.
func (t *Table) Explode(sel Selector, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	if sel == nil {
		sel = ColsAtAnyDepth(Or(IsList(), IsFrame()))
	}
	cols, err := resolveWith(t, sel, o)
	if err != nil {
		return nil, err
	}
	cols, err = explodable(cols)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return t, nil
	}

	var src, elem []int
	for row := range t.rows {
		n := -1
		for _, c := range cols {
			size := cellSize(c.Column, row)
			if n < 0 || size < n {
				n = size
			}
		}
		if n == 0 {
			if !o.dropEmpty {
				src = append(src, row)
				elem = append(elem, -1)
			}
			continue
		}
		for k := range n {
			src = append(src, row)
			elem = append(elem, k)
		}
	}

	exploded := make([]Column, len(cols))
	var g errgroup.Group
	g.SetLimit(max(1, o.parallelism))
	for i, c := range cols {
		g.Go(func() error {
			col, err := explodeColumn(c.Column, src, elem)
			exploded[i] = col
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tr := newColumnTree(t.take(src, o))
	for i, c := range cols {
		id, err := tr.find(c.Path)
		if err != nil {
			return nil, err
		}
		tr.replace(id, exploded[i])
	}
	out := tr.build()
	o.logOp("explode", t, out, slog.Int("columns", len(cols)))
	return out, nil
}

// explodable replaces selected groups with their list and frame descendants
// and drops nested duplicates. Selected columns that hold no collections are
// left out so that they are broadcast like unselected ones.
func explodable(cols []ColumnWithPath) ([]ColumnWithPath, error) {
	var out []ColumnWithPath
	for _, c := range simplify(cols) {
		if c.Column.Kind() != KindGroup {
			if holdsCollections(c.Column) {
				out = append(out, c)
			}
			continue
		}
		r := &resolver{table: c.Column.(*GroupColumn).table}
		nested, err := r.atAnyDepth(AtAnyDepth{})
		if err != nil {
			return nil, err
		}
		for _, n := range nested {
			if holdsCollections(n.Column) {
				out = append(out, ColumnWithPath{Column: n.Column, Path: c.Path.Append(n.Path...)})
			}
		}
	}
	return out, nil
}

// holdsCollections reports whether c is a frame column or a value column
// typed as a list or holding at least one list cell.
func holdsCollections(c Column) bool {
	switch col := c.(type) {
	case *FrameColumn:
		return true
	case *ValueColumn:
		if col.typ.IsCollection() {
			return true
		}
		return slices.ContainsFunc(col.values, func(v any) bool {
			_, ok := v.([]any)
			return ok
		})
	}
	return false
}

func cellSize(c Column, row int) int {
	switch col := c.(type) {
	case *FrameColumn:
		return col.frames[row].rows
	case *ValueColumn:
		switch v := col.values[row].(type) {
		case nil:
			return 0
		case []any:
			return len(v)
		}
		return 1
	}
	return 1
}

// explodeColumn builds the exploded form of c: output row j holds element
// elem[j] of source row src[j], or a missing value when elem[j] is -1.
func explodeColumn(c Column, src, elem []int) (Column, error) {
	switch col := c.(type) {
	case *FrameColumn:
		offsets := make([]int, len(col.frames))
		total := 0
		for i, f := range col.frames {
			offsets[i] = total
			total += f.rows
		}
		cat, err := Concat(col.frames...)
		if err != nil {
			return nil, err
		}
		idx := make([]int, len(src))
		for j, row := range src {
			idx[j] = -1
			if elem[j] >= 0 {
				idx[j] = offsets[row] + elem[j]
			}
		}
		return &GroupColumn{name: col.name, table: cat.take(idx, nil)}, nil
	case *ValueColumn:
		values := make([]any, len(src))
		for j, row := range src {
			if elem[j] < 0 {
				continue
			}
			switch v := col.values[row].(type) {
			case []any:
				values[j] = v[elem[j]]
			default:
				values[j] = v
			}
		}
		if len(values) == 0 {
			return newValueColumn(col.name, col.typ.ElemType(), values), nil
		}
		return newValueColumn(col.name, InferType(values), values), nil
	}
	return c.take(src), nil
}
