package thunderframe

import (
	"log/slog"
	"slices"
)

// Insert adds col at path. The last path component becomes the column name
// and missing parent groups are created. The column must have as many rows as
// the table, unless the table has no columns yet, in which case it adopts the
// column's row count. At and After choose the position among the siblings;
// by default the column is appended.
func (t *Table) Insert(path Path, col Column, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	if len(path) == 0 {
		return nil, ErrEmptyPath("insert")
	}
	if path.HasWildcard() {
		return nil, ErrMalformedPath(path.String(), "insert target cannot contain a wildcard")
	}
	tr := newColumnTree(t)
	if len(t.columns) == 0 {
		tr.rows = col.Len()
	}
	if col.Len() != tr.rows {
		return nil, ErrColumnLength(path.String(), tr.rows, col.Len())
	}
	if col.Name() != path.Name() {
		col = col.Rename(path.Name())
	}
	parent, err := tr.ensureGroup(path.Parent())
	if err != nil {
		return nil, err
	}
	pos, err := tr.position(parent, o)
	if err != nil {
		return nil, err
	}
	if err := tr.attach(parent, tr.newLeaf(col), pos); err != nil {
		return nil, err
	}
	out := tr.build()
	o.logOp("insert", t, out, slog.String("path", path.String()))
	return out, nil
}

// Add appends columns at the top level.
func (t *Table) Add(cols ...Column) (*Table, error) {
	out := t
	for _, c := range cols {
		var err error
		if out, err = out.Insert(Path{c.Name()}, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Replace swaps the column at path for col, keeping its position. The new
// column takes the old name.
func (t *Table) Replace(path Path, col Column) (*Table, error) {
	tr := newColumnTree(t)
	id, err := tr.find(path)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, ErrEmptyPath("replace")
	}
	if col.Len() != t.rows {
		return nil, ErrColumnLength(path.String(), t.rows, col.Len())
	}
	tr.replace(id, col)
	return tr.build(), nil
}

// position resolves the At and After options against the children of parent.
func (tr *columnTree) position(parent int, o *options) (int, error) {
	if o.after == nil {
		return o.at, nil
	}
	anchor, err := tr.find(o.after)
	if err != nil {
		return -1, err
	}
	if tr.nodes[anchor].parent != parent {
		return -1, ErrNotASibling(o.after, tr.path(parent))
	}
	return slices.Index(tr.nodes[parent].children, anchor) + 1, nil
}
