package thunderframe

// Concat stacks tables row-wise. The result has the union of the input
// columns, by name and in first-occurrence order, merged recursively through
// groups. Cells a table does not have are missing: nil for values, empty
// tables for frames.
func Concat(tables ...*Table) (*Table, error) {
	rows := 0
	for _, t := range tables {
		rows += t.rows
	}
	var names []string
	seen := make(map[string]struct{})
	for _, t := range tables {
		for _, c := range t.columns {
			if _, ok := seen[c.Name()]; !ok {
				seen[c.Name()] = struct{}{}
				names = append(names, c.Name())
			}
		}
	}
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		col, err := concatColumn(name, tables)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return newTable(cols, rows), nil
}

func concatColumn(name string, tables []*Table) (Column, error) {
	parts := make([]Column, len(tables))
	var kind ColumnKind
	found := false
	for i, t := range tables {
		c := t.Column(name)
		if c == nil {
			continue
		}
		if !found {
			kind, found = c.Kind(), true
		} else if c.Kind() != kind {
			return nil, ErrMixedKinds(name, kind, c.Kind())
		}
		parts[i] = c
	}
	switch kind {
	case KindGroup:
		subs := make([]*Table, len(tables))
		for i, p := range parts {
			if p == nil {
				subs[i] = newTable(nil, tables[i].rows)
				continue
			}
			subs[i] = p.(*GroupColumn).table
		}
		nested, err := Concat(subs...)
		if err != nil {
			return nil, err
		}
		return &GroupColumn{name: name, table: nested}, nil
	case KindFrame:
		var frames []*Table
		for i, p := range parts {
			if p == nil {
				for range tables[i].rows {
					frames = append(frames, Empty())
				}
				continue
			}
			frames = append(frames, p.(*FrameColumn).frames...)
		}
		return &FrameColumn{name: name, frames: frames}, nil
	}
	var (
		values []any
		typ    Type
		typed  bool
	)
	for i, p := range parts {
		if p == nil {
			values = append(values, make([]any, tables[i].rows)...)
			if tables[i].rows > 0 {
				typ.Nullable = true
			}
			continue
		}
		vc := p.(*ValueColumn)
		values = append(values, vc.values...)
		if !typed {
			typ = vc.typ.WithNullable(vc.typ.Nullable || typ.Nullable)
			typed = true
			continue
		}
		typ = unifyTypes(typ, vc.typ)
	}
	if values == nil {
		values = []any{}
	}
	return newValueColumn(name, typ, values), nil
}
