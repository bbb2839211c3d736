package thunderframe

// keyLeaves expands groups in cols into their leaf columns, depth first.
func keyLeaves(cols []ColumnWithPath) []ColumnWithPath {
	var out []ColumnWithPath
	for _, c := range cols {
		g, ok := c.Column.(*GroupColumn)
		if !ok {
			out = append(out, c)
			continue
		}
		out = append(out, keyLeaves(childrenOf(g.table, c.Path))...)
	}
	return out
}

// rowKey encodes the values of cols at row.
func rowKey(cols []Column, row int) (string, error) {
	var (
		enc []byte
		err error
	)
	for _, c := range cols {
		if enc, err = appendKey(enc, c.Get(row)); err != nil {
			return "", err
		}
	}
	return string(enc), nil
}

// partition splits the rows of a table into groups of equal keys. Groups are
// ordered by first occurrence and keep their rows in table order.
func partition(cols []Column, rows int) ([][]int, error) {
	index := make(map[string]int)
	var groups [][]int
	for row := range rows {
		k, err := rowKey(cols, row)
		if err != nil {
			return nil, err
		}
		g, ok := index[k]
		if !ok {
			g = len(groups)
			index[k] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], row)
	}
	return groups, nil
}

func columnsOf(cols []ColumnWithPath) []Column {
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = c.Column
	}
	return out
}
