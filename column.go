package thunderframe

import "slices"

// ColumnKind tells the three column variants apart.
type ColumnKind uint8

const (
	KindValue ColumnKind = iota
	KindGroup
	KindFrame
)

func (k ColumnKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindGroup:
		return "group"
	case KindFrame:
		return "frame"
	}
	return "unknown"
}

// Column is a named, fixed-length sequence of cells. The set of
// implementations is closed: *ValueColumn, *GroupColumn and *FrameColumn.
type Column interface {
	Name() string
	Len() int
	Kind() ColumnKind
	// Type is the element type of a value column and Any for the others.
	Type() Type
	// Get returns the cell at row: the plain value for a value column, a Row of
	// the nested table for a group, and a *Table for a frame.
	Get(row int) any
	// Rename returns a column sharing the same data under a new name.
	Rename(name string) Column

	// take gathers rows by index; -1 yields a missing cell.
	take(rows []int) Column
}

type ValueColumn struct {
	name   string
	values []any
	typ    Type
}

// NewValueColumn copies values into a new column and infers its type.
func NewValueColumn(name string, values []any) *ValueColumn {
	vs := slices.Clone(values)
	if vs == nil {
		vs = []any{}
	}
	return &ValueColumn{name: name, values: vs, typ: InferType(vs)}
}

// NewTypedValueColumn is NewValueColumn with an explicit element type.
func NewTypedValueColumn(name string, typ Type, values []any) *ValueColumn {
	vs := slices.Clone(values)
	if vs == nil {
		vs = []any{}
	}
	return &ValueColumn{name: name, values: vs, typ: typ}
}

// ValueColumnOf builds a value column from typed values.
func ValueColumnOf[T any](name string, values ...T) *ValueColumn {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return &ValueColumn{name: name, values: vs, typ: InferType(vs)}
}

// newValueColumn adopts values without copying.
func newValueColumn(name string, typ Type, values []any) *ValueColumn {
	return &ValueColumn{name: name, values: values, typ: typ}
}

func (c *ValueColumn) Name() string     { return c.name }
func (c *ValueColumn) Len() int         { return len(c.values) }
func (c *ValueColumn) Kind() ColumnKind { return KindValue }
func (c *ValueColumn) Type() Type       { return c.typ }
func (c *ValueColumn) Get(row int) any  { return c.values[row] }
func (c *ValueColumn) Values() []any    { return slices.Clone(c.values) }
func (c *ValueColumn) Rename(name string) Column {
	return &ValueColumn{name: name, values: c.values, typ: c.typ}
}

func (c *ValueColumn) take(rows []int) Column {
	out := make([]any, len(rows))
	typ := c.typ
	for i, r := range rows {
		if r < 0 {
			typ.Nullable = true
			continue
		}
		out[i] = c.values[r]
	}
	return newValueColumn(c.name, typ, out)
}

// GroupColumn is a struct-typed column: a nested table aligned row by row
// with its parent.
type GroupColumn struct {
	name  string
	table *Table
}

func NewGroupColumn(name string, t *Table) *GroupColumn {
	if t == nil {
		t = Empty()
	}
	return &GroupColumn{name: name, table: t}
}

// GroupOf builds a group from child columns, validating them like FromColumns.
func GroupOf(name string, cols ...Column) (*GroupColumn, error) {
	t, err := FromColumns(cols...)
	if err != nil {
		return nil, err
	}
	return &GroupColumn{name: name, table: t}, nil
}

func (c *GroupColumn) Name() string     { return c.name }
func (c *GroupColumn) Len() int         { return c.table.NumRows() }
func (c *GroupColumn) Kind() ColumnKind { return KindGroup }
func (c *GroupColumn) Type() Type       { return Type{Kind: TypeAny} }
func (c *GroupColumn) Get(row int) any  { return c.table.Row(row) }
func (c *GroupColumn) Table() *Table    { return c.table }
func (c *GroupColumn) Rename(name string) Column {
	return &GroupColumn{name: name, table: c.table}
}

func (c *GroupColumn) take(rows []int) Column {
	return &GroupColumn{name: c.name, table: c.table.take(rows, nil)}
}

// FrameColumn holds an independent table in every cell. Cells are never nil;
// a missing cell is an empty table.
type FrameColumn struct {
	name   string
	frames []*Table
}

func NewFrameColumn(name string, frames []*Table) *FrameColumn {
	fs := make([]*Table, len(frames))
	for i, f := range frames {
		if f == nil {
			f = Empty()
		}
		fs[i] = f
	}
	return &FrameColumn{name: name, frames: fs}
}

func (c *FrameColumn) Name() string         { return c.name }
func (c *FrameColumn) Len() int             { return len(c.frames) }
func (c *FrameColumn) Kind() ColumnKind     { return KindFrame }
func (c *FrameColumn) Type() Type           { return Type{Kind: TypeAny} }
func (c *FrameColumn) Get(row int) any      { return c.frames[row] }
func (c *FrameColumn) Frame(row int) *Table { return c.frames[row] }
func (c *FrameColumn) Frames() []*Table     { return slices.Clone(c.frames) }
func (c *FrameColumn) Rename(name string) Column {
	return &FrameColumn{name: name, frames: c.frames}
}

func (c *FrameColumn) take(rows []int) Column {
	out := make([]*Table, len(rows))
	for i, r := range rows {
		if r < 0 {
			out[i] = Empty()
			continue
		}
		out[i] = c.frames[r]
	}
	return &FrameColumn{name: c.name, frames: out}
}

// Concat returns all cells stacked into one table.
func (c *FrameColumn) Concat() (*Table, error) {
	return Concat(c.frames...)
}
