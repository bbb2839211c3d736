package thunderframe

import "slices"

// Resolve evaluates sel against t and returns the selected columns in order,
// without duplicates. Names that do not resolve fail with ErrMissingColumn
// unless AllowMissing is given.
func Resolve(t *Table, sel Selector, opts ...Option) ([]ColumnWithPath, error) {
	o := newOptions(opts)
	return resolveWith(t, sel, o)
}

// Resolve is the method form of the package-level Resolve.
func (t *Table) Resolve(sel Selector, opts ...Option) ([]ColumnWithPath, error) {
	return Resolve(t, sel, opts...)
}

func resolveWith(t *Table, sel Selector, o *options) ([]ColumnWithPath, error) {
	r := &resolver{table: t, allowMissing: o.allowMissing}
	cols, err := r.resolve(sel)
	if err != nil {
		return nil, err
	}
	return dedup(cols), nil
}

type resolver struct {
	table        *Table
	allowMissing bool
}

func (r *resolver) resolve(sel Selector) ([]ColumnWithPath, error) {
	switch s := sel.(type) {
	case nil, All:
		return topLevel(r.table), nil
	case ByName:
		if s.Path.HasWildcard() {
			return r.resolve(PathMatch{Pattern: s.Path})
		}
		return r.byPath(s.Path)
	case ByRef:
		return r.byPath(s.Ref.Path)
	case Children:
		parents, err := r.resolve(s.Of)
		if err != nil {
			return nil, err
		}
		var out []ColumnWithPath
		for _, p := range parents {
			g, ok := p.Column.(*GroupColumn)
			if !ok {
				return nil, ErrKindMismatch(p.Path, KindGroup, p.Column.Kind())
			}
			out = append(out, childrenOf(g.table, p.Path)...)
		}
		return out, nil
	case AtAnyDepth:
		return r.atAnyDepth(s)
	case Where:
		from, err := r.resolve(s.From)
		if err != nil {
			return nil, err
		}
		if s.Pred == nil {
			return from, nil
		}
		out := make([]ColumnWithPath, 0, len(from))
		for _, c := range from {
			if s.Pred(c) {
				out = append(out, c)
			}
		}
		return out, nil
	case Union:
		var out []ColumnWithPath
		for _, member := range s {
			cols, err := r.resolve(member)
			if err != nil {
				return nil, err
			}
			out = append(out, cols...)
		}
		return dedup(out), nil
	case Except:
		from, err := r.resolve(s.From)
		if err != nil {
			return nil, err
		}
		removed, err := r.resolve(s.Remove)
		if err != nil {
			return nil, err
		}
		return slices.DeleteFunc(from, func(c ColumnWithPath) bool {
			return slices.ContainsFunc(removed, func(x ColumnWithPath) bool {
				return c.Path.HasPrefix(x.Path)
			})
		}), nil
	case Take:
		from, err := r.deduped(s.From)
		if err != nil {
			return nil, err
		}
		return from[:clampCount(s.N, len(from))], nil
	case Drop:
		from, err := r.deduped(s.From)
		if err != nil {
			return nil, err
		}
		return from[clampCount(s.N, len(from)):], nil
	case TakeLast:
		from, err := r.deduped(s.From)
		if err != nil {
			return nil, err
		}
		return from[len(from)-clampCount(s.N, len(from)):], nil
	case DropLast:
		from, err := r.deduped(s.From)
		if err != nil {
			return nil, err
		}
		return from[:len(from)-clampCount(s.N, len(from))], nil
	case Simplify:
		from, err := r.deduped(s.From)
		if err != nil {
			return nil, err
		}
		return simplify(from), nil
	case PathMatch:
		all, err := r.atAnyDepth(AtAnyDepth{})
		if err != nil {
			return nil, err
		}
		out := make([]ColumnWithPath, 0)
		for _, c := range all {
			if c.Path.Matches(s.Pattern) {
				out = append(out, c)
			}
		}
		if len(out) == 0 && !r.allowMissing {
			return nil, ErrColumnNotFound(s.Pattern, nil)
		}
		return out, nil
	}
	return nil, ErrUnsupportedSelector(sel)
}

func (r *resolver) deduped(sel Selector) ([]ColumnWithPath, error) {
	cols, err := r.resolve(sel)
	if err != nil {
		return nil, err
	}
	return dedup(cols), nil
}

func (r *resolver) byPath(p Path) ([]ColumnWithPath, error) {
	c, err := r.table.Get(p)
	if err != nil {
		if r.allowMissing {
			return nil, nil
		}
		return nil, err
	}
	return []ColumnWithPath{{Column: c, Path: slices.Clone(p)}}, nil
}

type descendItem struct {
	col   ColumnWithPath
	depth int
}

func (r *resolver) atAnyDepth(s AtAnyDepth) ([]ColumnWithPath, error) {
	var starts []descendItem
	if s.Of == nil {
		for _, c := range topLevel(r.table) {
			starts = append(starts, descendItem{col: c, depth: 1})
		}
	} else {
		roots, err := r.resolve(s.Of)
		if err != nil {
			return nil, err
		}
		for _, root := range roots {
			children, err := nestedColumns(root, s.IncludeFrames)
			if err != nil {
				return nil, err
			}
			for _, c := range children {
				starts = append(starts, descendItem{col: c, depth: 1})
			}
		}
	}
	var out []ColumnWithPath
	stack := slices.Clone(starts)
	slices.Reverse(stack)
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, item.col)
		if s.MaxDepth > 0 && item.depth >= s.MaxDepth {
			continue
		}
		children, err := nestedColumns(item.col, s.IncludeFrames)
		if err != nil {
			return nil, err
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, descendItem{col: children[i], depth: item.depth + 1})
		}
	}
	return out, nil
}

// nestedColumns lists the direct children of a group, or of a frame's
// concatenated cells when frames are included.
func nestedColumns(c ColumnWithPath, includeFrames bool) ([]ColumnWithPath, error) {
	switch col := c.Column.(type) {
	case *GroupColumn:
		return childrenOf(col.table, c.Path), nil
	case *FrameColumn:
		if !includeFrames {
			return nil, nil
		}
		cat, err := col.Concat()
		if err != nil {
			return nil, err
		}
		return childrenOf(cat, c.Path), nil
	}
	return nil, nil
}

func topLevel(t *Table) []ColumnWithPath {
	return childrenOf(t, nil)
}

func childrenOf(t *Table, parent Path) []ColumnWithPath {
	out := make([]ColumnWithPath, len(t.columns))
	for i, c := range t.columns {
		out[i] = ColumnWithPath{Column: c, Path: parent.Append(c.Name())}
	}
	return out
}

func dedup(cols []ColumnWithPath) []ColumnWithPath {
	seen := make(map[string]struct{}, len(cols))
	out := make([]ColumnWithPath, 0, len(cols))
	for _, c := range cols {
		k := c.Path.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

// simplify keeps only columns that have no selected ancestor.
func simplify(cols []ColumnWithPath) []ColumnWithPath {
	out := make([]ColumnWithPath, 0, len(cols))
	for _, c := range cols {
		covered := slices.ContainsFunc(cols, func(o ColumnWithPath) bool {
			return o.Path.IsAncestorOf(c.Path)
		})
		if !covered {
			out = append(out, c)
		}
	}
	return out
}

func clampCount(n, size int) int {
	return max(0, min(n, size))
}
