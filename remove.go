package thunderframe

import "log/slog"

// Remove returns t without the selected columns. Removing a group removes its
// whole subtree, and groups left without children are removed as well.
func (t *Table) Remove(sel Selector, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	out, _, err := t.remove(sel, o)
	if err != nil {
		return nil, err
	}
	o.logOp("remove", t, out)
	return out, nil
}

// remove also returns the removed subtree roots.
func (t *Table) remove(sel Selector, o *options) (*Table, []ColumnWithPath, error) {
	cols, err := resolveWith(t, sel, o)
	if err != nil {
		return nil, nil, err
	}
	roots := simplify(cols)
	tr := newColumnTree(t)
	for _, c := range roots {
		id, err := tr.find(c.Path)
		if err != nil {
			return nil, nil, err
		}
		tr.detach(id)
	}
	return tr.build(), roots, nil
}

// Drop is Remove by top-level or nested column names.
func (t *Table) Drop(paths ...Path) (*Table, error) {
	return t.Remove(Paths(paths...))
}

// Pop removes the selected columns and returns them together with the
// remaining table.
func (t *Table) Pop(sel Selector, opts ...Option) (*Table, []ColumnWithPath, error) {
	o := newOptions(opts)
	out, removed, err := t.remove(sel, o)
	if err != nil {
		return nil, nil, err
	}
	o.logOp("pop", t, out, slog.Int("removed", len(removed)))
	return out, removed, nil
}
