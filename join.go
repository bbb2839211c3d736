package thunderframe

import (
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
)

// JoinType selects which rows a join emits.
type JoinType int

const (
	// JoinInner emits matching pairs only.
	JoinInner JoinType = iota
	// JoinLeft also emits unmatched left rows, with missing right values.
	JoinLeft
	// JoinRight also emits unmatched right rows, with missing left values.
	JoinRight
	// JoinFull emits unmatched rows of both sides.
	JoinFull
	// JoinExclude emits the left rows that match nothing, with left columns only.
	JoinExclude
	// JoinFilter emits each left row that matches something once, with left
	// columns only.
	JoinFilter
)

func (t JoinType) String() string {
	switch t {
	case JoinInner:
		return "inner"
	case JoinLeft:
		return "left"
	case JoinRight:
		return "right"
	case JoinFull:
		return "full"
	case JoinExclude:
		return "exclude"
	case JoinFilter:
		return "filter"
	}
	return fmt.Sprintf("JoinType(%d)", int(t))
}

// JoinKey pairs a left column with the right column it must equal.
type JoinKey struct {
	Left  Path
	Right Path
}

// On builds keys for columns that have the same name on both sides.
func On(names ...string) []JoinKey {
	keys := make([]JoinKey, len(names))
	for i, n := range names {
		keys[i] = JoinKey{Left: Path{n}, Right: Path{n}}
	}
	return keys
}

// Match pairs differently named key columns.
func Match(left, right Path) JoinKey {
	return JoinKey{Left: left, Right: right}
}

// Join matches rows whose key columns are exactly equal. A nil keys slice
// joins on every top-level name the tables share. Key groups match leaf by
// leaf. The output has the left columns followed by the right columns minus
// the right keys; right names already taken get a numeric suffix.
// AddNewColumns(false) keeps the left columns only. Unmatched right rows of
// Right and Full joins take their left key values from the right keys.
func (t *Table) Join(right *Table, typ JoinType, keys []JoinKey, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	plan, err := t.planKeyJoin(right, typ, keys)
	if err != nil {
		return nil, err
	}
	lk, rk, err := keyColumns(t, right, plan.Keys)
	if err != nil {
		return nil, err
	}
	pairs, err := matchRows(t, right, typ, columnsOf(lk), columnsOf(rk), nil, o.parallelism)
	if err != nil {
		return nil, err
	}
	out, err := assembleJoin(t, right, typ, pairs, plan.Keys, lk, rk, o)
	if err != nil {
		return nil, err
	}
	o.logOp("join", t, out, slog.String("type", typ.String()), slog.String("plan", plan.Summary()))
	return out, nil
}

// InnerJoin is Join with JoinInner.
func (t *Table) InnerJoin(right *Table, keys []JoinKey, opts ...Option) (*Table, error) {
	return t.Join(right, JoinInner, keys, opts...)
}

// LeftJoin is Join with JoinLeft.
func (t *Table) LeftJoin(right *Table, keys []JoinKey, opts ...Option) (*Table, error) {
	return t.Join(right, JoinLeft, keys, opts...)
}

// RightJoin is Join with JoinRight.
func (t *Table) RightJoin(right *Table, keys []JoinKey, opts ...Option) (*Table, error) {
	return t.Join(right, JoinRight, keys, opts...)
}

// FullJoin is Join with JoinFull.
func (t *Table) FullJoin(right *Table, keys []JoinKey, opts ...Option) (*Table, error) {
	return t.Join(right, JoinFull, keys, opts...)
}

// FilterJoin keeps the left rows that have a match.
func (t *Table) FilterJoin(right *Table, keys []JoinKey, opts ...Option) (*Table, error) {
	return t.Join(right, JoinFilter, keys, opts...)
}

// ExcludeJoin keeps the left rows that have no match.
func (t *Table) ExcludeJoin(right *Table, keys []JoinKey, opts ...Option) (*Table, error) {
	return t.Join(right, JoinExclude, keys, opts...)
}

func (t *Table) planKeyJoin(right *Table, typ JoinType, keys []JoinKey) (JoinPlan, error) {
	if keys == nil {
		for _, name := range t.ColumnNames() {
			if right.Column(name) != nil {
				keys = append(keys, JoinKey{Left: Path{name}, Right: Path{name}})
			}
		}
		if len(keys) == 0 {
			return JoinPlan{}, ErrNoJoinKeys()
		}
	}
	for _, k := range keys {
		if len(k.Left) == 0 || len(k.Right) == 0 {
			return JoinPlan{}, ErrEmptyPath("join key")
		}
	}
	return JoinPlan{
		Type:      typ,
		Strategy:  StrategyHash,
		Keys:      keys,
		LeftRows:  t.rows,
		RightRows: right.rows,
	}, nil
}

// keyColumns resolves both sides of keys down to leaf columns, pairwise.
func keyColumns(left, right *Table, keys []JoinKey) ([]ColumnWithPath, []ColumnWithPath, error) {
	var lk, rk []ColumnWithPath
	for _, k := range keys {
		lc, err := left.Get(k.Left)
		if err != nil {
			return nil, nil, err
		}
		rc, err := right.Get(k.Right)
		if err != nil {
			return nil, nil, err
		}
		ll := keyLeaves([]ColumnWithPath{{Column: lc, Path: k.Left}})
		rl := keyLeaves([]ColumnWithPath{{Column: rc, Path: k.Right}})
		if len(ll) != len(rl) {
			return nil, nil, ErrJoinKeyCount(len(ll), len(rl))
		}
		for i := range ll {
			if ll[i].Column.Kind() == KindFrame {
				return nil, nil, ErrKindMismatch(ll[i].Path, KindValue, KindFrame)
			}
			if rl[i].Column.Kind() == KindFrame {
				return nil, nil, ErrKindMismatch(rl[i].Path, KindValue, KindFrame)
			}
		}
		lk = append(lk, ll...)
		rk = append(rk, rl...)
	}
	return lk, rk, nil
}

// joinPairs lists output rows as (left, right) source rows; -1 is a missing side.
type joinPairs struct {
	left  []int
	right []int
}

func (p *joinPairs) add(l, r int) {
	p.left = append(p.left, l)
	p.right = append(p.right, r)
}

// matchRows pairs left and right rows. With key columns the right side is
// hashed and only equal keys are candidates; match then filters candidates.
// Left rows are scanned in chunks when parallelism allows, and the chunks are
// merged in order.
func matchRows(left, right *Table, typ JoinType, lk, rk []Column, match evalFunc, parallelism int) (joinPairs, error) {
	var index map[string][]int
	var all []int
	if len(rk) > 0 {
		index = make(map[string][]int)
		for r := range right.rows {
			k, err := rowKey(rk, r)
			if err != nil {
				return joinPairs{}, err
			}
			index[k] = append(index[k], r)
		}
	} else {
		all = make([]int, right.rows)
		for r := range all {
			all[r] = r
		}
	}

	chunks := 1
	if parallelism > 1 && left.rows > 1 {
		chunks = min(parallelism, left.rows)
	}
	size := (left.rows + chunks - 1) / max(1, chunks)
	parts := make([]joinPairs, chunks)
	seen := make([][]bool, chunks)
	var g errgroup.Group
	g.SetLimit(max(1, parallelism))
	for c := range chunks {
		g.Go(func() error {
			matched := make([]bool, right.rows)
			part := &parts[c]
			for l := c * size; l < min(left.rows, (c+1)*size); l++ {
				candidates := all
				if index != nil {
					k, err := rowKey(lk, l)
					if err != nil {
						return err
					}
					candidates = index[k]
				}
				found := false
				for _, r := range candidates {
					if match != nil && !match(l, r) {
						continue
					}
					found = true
					if typ == JoinExclude {
						break
					}
					if typ == JoinFilter {
						part.add(l, r)
						break
					}
					part.add(l, r)
					matched[r] = true
				}
				if !found && (typ == JoinLeft || typ == JoinFull || typ == JoinExclude) {
					part.add(l, -1)
				}
			}
			seen[c] = matched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return joinPairs{}, err
	}

	var out joinPairs
	for _, p := range parts {
		out.left = append(out.left, p.left...)
		out.right = append(out.right, p.right...)
	}
	if typ == JoinRight || typ == JoinFull {
		for r := range right.rows {
			if !slices.ContainsFunc(seen, func(m []bool) bool { return m[r] }) {
				out.add(-1, r)
			}
		}
	}
	return out, nil
}

// assembleJoin builds the output table for pairs. Right key columns listed in
// keys are left out of the added right columns.
func assembleJoin(left, right *Table, typ JoinType, pairs joinPairs, keys []JoinKey, lk, rk []ColumnWithPath, o *options) (*Table, error) {
	out := left.take(pairs.left, o)
	if typ == JoinRight || typ == JoinFull {
		var err error
		if out, err = fillLeftKeys(out, pairs, lk, rk); err != nil {
			return nil, err
		}
	}
	if typ == JoinExclude || typ == JoinFilter || !o.addNewColumns {
		return out, nil
	}
	rest := right
	if len(keys) > 0 {
		paths := make([]Path, len(keys))
		for i, k := range keys {
			paths[i] = k.Right
		}
		var err error
		if rest, _, err = right.remove(Paths(paths...), o); err != nil {
			return nil, err
		}
	}
	rest = rest.take(pairs.right, o)
	gen := newNameGenerator(out.ColumnNames()...)
	cols := slices.Clone(out.columns)
	for _, c := range rest.columns {
		if name := gen.unique(c.Name()); name != c.Name() {
			c = c.Rename(name)
		}
		cols = append(cols, c)
	}
	return newTable(cols, len(pairs.left)), nil
}

// fillLeftKeys copies right key values into the left key columns of rows
// that only exist on the right.
func fillLeftKeys(out *Table, pairs joinPairs, lk, rk []ColumnWithPath) (*Table, error) {
	if len(lk) == 0 || !slices.Contains(pairs.left, -1) {
		return out, nil
	}
	tr := newColumnTree(out)
	for i, key := range lk {
		id, err := tr.find(key.Path)
		if err != nil {
			return nil, err
		}
		col, ok := tr.nodes[id].col.(*ValueColumn)
		if !ok {
			continue
		}
		values := slices.Clone(col.values)
		typ := col.typ
		for j, l := range pairs.left {
			if l < 0 {
				values[j] = rk[i].Column.Get(pairs.right[j])
			}
		}
		typ.Nullable = slices.ContainsFunc(values, func(v any) bool { return v == nil })
		typ = unifyTypes(typ, rk[i].Column.Type().WithNullable(typ.Nullable))
		tr.replace(id, newValueColumn(col.name, typ, values))
	}
	return tr.build(), nil
}
