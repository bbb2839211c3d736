package thunderframe

import "log/slog"

// Select returns a table made of the selected columns, placed at the top
// level in selection order. Columns selected together with one of their
// ancestors are kept only inside it. Two selected columns with the same name
// fail with ErrNameCollision.
func (t *Table) Select(sel Selector, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	cols, err := resolveWith(t, sel, o)
	if err != nil {
		return nil, err
	}
	cols = simplify(cols)
	out, err := fromColumnsWithRows(columnsOf(cols), t.rows)
	if err != nil {
		return nil, err
	}
	o.logOp("select", t, out, slog.Int("columns", len(cols)))
	return out, nil
}

// SelectPaths is Select over explicit paths.
func (t *Table) SelectPaths(paths ...Path) (*Table, error) {
	return t.Select(Paths(paths...))
}

// Alias pairs a source path with the top-level name it is selected under.
type Alias struct {
	Name string
	Path Path
}

// Project selects columns under new names, in the order given.
func (t *Table) Project(aliases ...Alias) (*Table, error) {
	cols := make([]Column, len(aliases))
	for i, a := range aliases {
		c, err := t.Get(a.Path)
		if err != nil {
			return nil, err
		}
		cols[i] = c.Rename(a.Name)
	}
	return fromColumnsWithRows(cols, t.rows)
}
