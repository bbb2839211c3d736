package thunderframe

import "log/slog"

// Ungroup replaces each selected group with its direct children, placed
// where the group was. Only the outermost selected groups are ungrouped. A
// child whose name is already taken by a sibling of the group fails with
// ErrNameCollision.
func (t *Table) Ungroup(sel Selector, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	cols, err := resolveWith(t, sel, o)
	if err != nil {
		return nil, err
	}
	tr := newColumnTree(t)
	roots := simplify(cols)
	for _, g := range roots {
		if g.Column.Kind() != KindGroup {
			return nil, ErrKindMismatch(g.Path, KindGroup, g.Column.Kind())
		}
		id, err := tr.find(g.Path)
		if err != nil {
			return nil, err
		}
		parent := tr.nodes[id].parent
		pos := tr.detach(id)
		tr.expand(id)
		for k, child := range append([]int(nil), tr.nodes[id].children...) {
			if err := tr.attach(parent, child, pos+k); err != nil {
				return nil, err
			}
		}
	}
	out := tr.build()
	o.logOp("ungroup", t, out, slog.Int("groups", len(roots)))
	return out, nil
}
