package thunderframe

// Row is a read-only view of one row.
type Row interface {
	Index() int
	Get(field string) (any, error)
	GetPath(path Path) (any, error)
	ToMap() (map[string]any, error)
}

type tableRow struct {
	table *Table
	index int
}

func (r *tableRow) Index() int { return r.index }

func (r *tableRow) Get(field string) (any, error) {
	c, err := r.table.ColumnTry(field)
	if err != nil {
		return nil, err
	}
	return c.Get(r.index), nil
}

func (r *tableRow) GetPath(path Path) (any, error) {
	c, err := r.table.Get(path)
	if err != nil {
		return nil, err
	}
	return c.Get(r.index), nil
}

// ToMap returns the row as a map; groups become nested maps and frame cells
// stay *Table.
func (r *tableRow) ToMap() (map[string]any, error) {
	result := make(map[string]any, len(r.table.columns))
	for _, c := range r.table.columns {
		if g, ok := c.(*GroupColumn); ok {
			nested, err := (&tableRow{table: g.table, index: r.index}).ToMap()
			if err != nil {
				return nil, err
			}
			result[c.Name()] = nested
			continue
		}
		result[c.Name()] = c.Get(r.index)
	}
	return result, nil
}
