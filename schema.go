package thunderframe

import (
	"fmt"
	"strings"
)

// ColumnSchema describes one column of a table's column tree.
type ColumnSchema struct {
	Name string
	Path Path
	Kind ColumnKind
	Type Type
	// Children lists the columns of a group, or the union of the columns of
	// a frame's cells.
	Children []ColumnSchema
}

// Schema is the structural description of a table.
type Schema struct {
	Columns []ColumnSchema
}

// Schema describes the column tree of t.
func (t *Table) Schema() Schema {
	return Schema{Columns: describe(t, nil)}
}

func describe(t *Table, parent Path) []ColumnSchema {
	out := make([]ColumnSchema, len(t.columns))
	for i, c := range t.columns {
		path := parent.Append(c.Name())
		cs := ColumnSchema{Name: c.Name(), Path: path, Kind: c.Kind(), Type: c.Type()}
		switch col := c.(type) {
		case *GroupColumn:
			cs.Children = describe(col.table, path)
		case *FrameColumn:
			// Cells of incompatible shape leave the children undescribed.
			if cat, err := col.Concat(); err == nil {
				cs.Children = describe(cat, path)
			}
		}
		out[i] = cs
	}
	return out
}

// Lookup finds the description of the column at path.
func (s Schema) Lookup(path Path) (ColumnSchema, bool) {
	cols := s.Columns
	for i, name := range path {
		found := false
		for _, c := range cols {
			if c.Name != name {
				continue
			}
			if i == len(path)-1 {
				return c, true
			}
			cols, found = c.Children, true
			break
		}
		if !found {
			break
		}
	}
	return ColumnSchema{}, false
}

func (s Schema) String() string {
	var b strings.Builder
	writeSchema(&b, s.Columns, 0)
	return b.String()
}

func writeSchema(b *strings.Builder, cols []ColumnSchema, depth int) {
	for _, c := range cols {
		b.WriteString(strings.Repeat("  ", depth))
		switch c.Kind {
		case KindGroup:
			fmt.Fprintf(b, "%s: {\n", c.Name)
			writeSchema(b, c.Children, depth+1)
			b.WriteString(strings.Repeat("  ", depth) + "}\n")
		case KindFrame:
			fmt.Fprintf(b, "%s: [\n", c.Name)
			writeSchema(b, c.Children, depth+1)
			b.WriteString(strings.Repeat("  ", depth) + "]\n")
		default:
			fmt.Fprintf(b, "%s: %s\n", c.Name, c.Type)
		}
	}
}

// Accessor is a typed binding to the column at a fixed path, built once and
// reused to read values of that column from tables and rows.
type Accessor[T any] struct {
	path Path
}

// NewAccessor binds the column at the path given by names.
func NewAccessor[T any](names ...string) Accessor[T] {
	return Accessor[T]{path: PathOf(names...)}
}

func (a Accessor[T]) Path() Path                      { return a.path.Append() }
func (a Accessor[T]) Selector() Selector              { return ByName{Path: a.path} }
func (a Accessor[T]) Name() string                    { return a.path.Name() }
func (a Accessor[T]) String() string                  { return a.path.String() }
func (a Accessor[T]) Column(t *Table) (Column, error) { return t.Get(a.path) }

// Get reads the value of the bound column in r. A missing value gives the
// zero T.
func (a Accessor[T]) Get(r Row) (T, error) {
	var zero T
	v, err := r.GetPath(a.path)
	if err != nil {
		return zero, err
	}
	return a.convert(v)
}

// Values reads the whole bound column of t.
func (a Accessor[T]) Values(t *Table) ([]T, error) {
	c, err := t.Get(a.path)
	if err != nil {
		return nil, err
	}
	out := make([]T, c.Len())
	for i := range out {
		if out[i], err = a.convert(c.Get(i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (a Accessor[T]) convert(v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	x, ok := v.(T)
	if !ok {
		return zero, ErrValueType(a.path, v, fmt.Sprintf("%T", zero))
	}
	return x, nil
}
