package thunderframe

import (
	"log/slog"
	"slices"
)

// PathFunc computes the destination path of a moved column.
type PathFunc func(ColumnWithPath) Path

// Move relocates every selected column to the path computed by to, creating
// groups along the way. Selected columns nested in another selected column
// travel with it. Groups left empty are removed. With At or After, columns
// that land in the same group are placed there consecutively in selection
// order; otherwise they are appended.
func (t *Table) Move(sel Selector, to PathFunc, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	cols, err := resolveWith(t, sel, o)
	if err != nil {
		return nil, err
	}
	cols = simplify(cols)
	tr := newColumnTree(t)
	ids := make([]int, len(cols))
	targets := make([]Path, len(cols))
	for i, c := range cols {
		target := to(c)
		if len(target) == 0 {
			return nil, ErrEmptyPath("move")
		}
		if target.HasWildcard() {
			return nil, ErrMalformedPath(target.String(), "move target cannot contain a wildcard")
		}
		if c.Path.IsAncestorOf(target) {
			return nil, ErrInvalidPathf("cannot move %s into itself", c.Path)
		}
		if ids[i], err = tr.find(c.Path); err != nil {
			return nil, err
		}
		targets[i] = target
	}
	for _, id := range ids {
		tr.detach(id)
	}
	next := make(map[int]int)
	for i, id := range ids {
		parent, err := tr.ensureGroup(targets[i].Parent())
		if err != nil {
			return nil, err
		}
		pos, ok := next[parent]
		if !ok {
			if pos, err = tr.position(parent, o); err != nil {
				return nil, err
			}
		}
		tr.rename(id, targets[i].Name())
		if err := tr.attach(parent, id, pos); err != nil {
			return nil, err
		}
		if pos >= 0 {
			next[parent] = slices.Index(tr.nodes[parent].children, id) + 1
		}
	}
	out := tr.build()
	o.logOp("move", t, out, slog.Int("columns", len(ids)))
	return out, nil
}

// Into moves columns into the group at path, keeping their names.
func Into(group Path) PathFunc {
	return func(c ColumnWithPath) Path { return group.Append(c.Name()) }
}

// ToTop moves columns to the top level, keeping their names.
func ToTop() PathFunc {
	return func(c ColumnWithPath) Path { return Path{c.Name()} }
}

// Up moves columns one level up, next to their parent group.
func Up() PathFunc {
	return func(c ColumnWithPath) Path {
		if len(c.Path) < 2 {
			return c.Path
		}
		return c.Path.Parent().WithName(c.Name())
	}
}

// InPlace keeps the current path. Combined with At or After it reorders
// columns among their siblings.
func InPlace() PathFunc {
	return func(c ColumnWithPath) Path { return c.Path }
}

// Rename changes the name of the column at path, keeping its position.
func (t *Table) Rename(path Path, name string) (*Table, error) {
	return t.RenameWith(ByName{Path: path}, func(string) string { return name })
}

// RenameWith renames every selected column with fn, keeping positions.
func (t *Table) RenameWith(sel Selector, fn func(string) string, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	cols, err := resolveWith(t, sel, o)
	if err != nil {
		return nil, err
	}
	tr := newColumnTree(t)
	ids := make([]int, len(cols))
	for i, c := range cols {
		if ids[i], err = tr.find(c.Path); err != nil {
			return nil, err
		}
	}
	// Renames are applied to all nodes first so that swapping names works.
	for i, id := range ids {
		tr.rename(id, fn(cols[i].Name()))
	}
	for _, id := range ids {
		parent := tr.nodes[id].parent
		names := tr.childNames(parent)
		if count(names, tr.nodes[id].name) > 1 {
			return nil, ErrDuplicateColumn(tr.path(id))
		}
	}
	out := tr.build()
	o.logOp("rename", t, out, slog.Int("columns", len(ids)))
	return out, nil
}

// Group moves the selected columns into the group at into, creating it if
// needed.
func (t *Table) Group(sel Selector, into Path, opts ...Option) (*Table, error) {
	return t.Move(sel, Into(into), opts...)
}

// MoveTo moves the selected columns into the group at path.
func (t *Table) MoveTo(sel Selector, group Path, opts ...Option) (*Table, error) {
	return t.Move(sel, Into(group), opts...)
}

// MoveToTop moves the selected columns to the top level.
func (t *Table) MoveToTop(sel Selector, opts ...Option) (*Table, error) {
	return t.Move(sel, ToTop(), opts...)
}

// MoveChildren moves the children of the selected groups with to. The groups
// themselves are removed once empty.
func (t *Table) MoveChildren(groups Selector, to PathFunc, opts ...Option) (*Table, error) {
	return t.Move(ChildrenOf(groups), to, opts...)
}

func count(names []string, name string) int {
	n := 0
	for _, s := range names {
		if s == name {
			n++
		}
	}
	return n
}
