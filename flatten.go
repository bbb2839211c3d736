package thunderframe

import (
	"log/slog"
	"strings"
)

// Flatten replaces every selected group, at any depth, with its leaf columns,
// placed where the group was. A nil selector flattens the whole table. Leaf
// names are kept as-is, or joined with the names of the groups between the
// flattened group and the leaf when KeepParentNames is given. Names that
// collide with siblings get a numeric suffix.
func (t *Table) Flatten(sel Selector, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	cols, err := resolveWith(t, sel, o)
	if err != nil {
		return nil, err
	}
	tr := newColumnTree(t)
	flattened := 0
	for _, g := range simplify(cols) {
		if g.Column.Kind() != KindGroup {
			continue
		}
		id, err := tr.find(g.Path)
		if err != nil {
			return nil, err
		}
		parent := tr.nodes[id].parent
		pos := tr.detach(id)
		leaves := tr.leaves(id)
		gen := newNameGenerator(tr.childNames(parent)...)
		for k, leaf := range leaves {
			name := tr.nodes[leaf].name
			if o.keepParentNames {
				name = strings.Join(tr.path(leaf)[len(g.Path)-1:], o.separator)
			}
			tr.rename(leaf, gen.unique(name))
			if err := tr.attach(parent, leaf, pos+k); err != nil {
				return nil, err
			}
		}
		flattened++
	}
	out := tr.build()
	o.logOp("flatten", t, out, slog.Int("groups", flattened))
	return out, nil
}
