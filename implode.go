package thunderframe

import (
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Implode collapses rows that agree on every unselected column into one row.
// Selected value columns become list columns, selected groups become frame
// columns, and selected frame columns concatenate the frames of the collapsed
// rows. DropNA(true) leaves missing values out of the lists. Rows keep the
// order of their first occurrence. Unselected frame columns cannot be
// compared and fail with ErrTypeMismatch.
func (t *Table) Implode(sel Selector, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	cols, err := resolveWith(t, sel, o)
	if err != nil {
		return nil, err
	}
	cols = simplify(cols)
	for _, c := range cols {
		if len(c.Path) == 0 {
			return nil, ErrEmptyPath("implode")
		}
	}
	var keys []ColumnWithPath
	for _, c := range keyLeaves(topLevel(t)) {
		covered := false
		for _, s := range cols {
			if s.Path.Equal(c.Path) || s.Path.IsAncestorOf(c.Path) {
				covered = true
				break
			}
		}
		if !covered {
			keys = append(keys, c)
		}
	}
	groups, err := partition(columnsOf(keys), t.rows)
	if err != nil {
		return nil, err
	}

	imploded := make([]Column, len(cols))
	var g errgroup.Group
	g.SetLimit(max(1, o.parallelism))
	for i, c := range cols {
		g.Go(func() error {
			col, err := implodeColumn(c.Column, groups, o.dropNA)
			imploded[i] = col
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	first := make([]int, len(groups))
	for i, rows := range groups {
		first[i] = rows[0]
	}
	tr := newColumnTree(t.take(first, o))
	for i, c := range cols {
		id, err := tr.find(c.Path)
		if err != nil {
			return nil, err
		}
		tr.replace(id, imploded[i])
	}
	out := tr.build()
	o.logOp("implode", t, out, slog.Int("groups", len(groups)))
	return out, nil
}

func implodeColumn(c Column, groups [][]int, dropNA bool) (Column, error) {
	switch col := c.(type) {
	case *GroupColumn:
		frames := make([]*Table, len(groups))
		for i, rows := range groups {
			frames[i] = col.table.take(rows, nil)
		}
		return &FrameColumn{name: col.name, frames: frames}, nil
	case *FrameColumn:
		frames := make([]*Table, len(groups))
		for i, rows := range groups {
			parts := make([]*Table, len(rows))
			for j, r := range rows {
				parts[j] = col.frames[r]
			}
			cat, err := Concat(parts...)
			if err != nil {
				return nil, err
			}
			frames[i] = cat
		}
		return &FrameColumn{name: col.name, frames: frames}, nil
	case *ValueColumn:
		lists := make([]any, len(groups))
		for i, rows := range groups {
			list := make([]any, 0, len(rows))
			for _, r := range rows {
				v := col.values[r]
				if dropNA && isNA(v) {
					continue
				}
				list = append(list, v)
			}
			lists[i] = list
		}
		elem := col.typ
		if dropNA {
			elem.Nullable = false
		}
		return newValueColumn(col.name, ListOf(elem), lists), nil
	}
	return nil, ErrUnsupportedSelector(c)
}
