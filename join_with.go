package thunderframe

import "log/slog"

// JoinedRow is the row pair a join condition is evaluated on. Get and GetPath
// read the left row; Right gives the right row.
type JoinedRow interface {
	Row
	Left() Row
	Right() Row
}

type joinedRow struct {
	left  Row
	right Row
}

func (jr *joinedRow) Index() int                     { return jr.left.Index() }
func (jr *joinedRow) Get(field string) (any, error)  { return jr.left.Get(field) }
func (jr *joinedRow) GetPath(path Path) (any, error) { return jr.left.GetPath(path) }
func (jr *joinedRow) Left() Row                      { return jr.left }
func (jr *joinedRow) Right() Row                     { return jr.right }

// ToMap returns the left row's map with the right row's map under "right",
// unless the left row already has a column of that name.
func (jr *joinedRow) ToMap() (map[string]any, error) {
	result, err := jr.left.ToMap()
	if err != nil {
		return nil, err
	}
	if _, taken := result["right"]; taken {
		return result, nil
	}
	right, err := jr.right.ToMap()
	if err != nil {
		return nil, err
	}
	result["right"] = right
	return result, nil
}

// JoinWith matches rows for which cond holds. Equality comparisons between a
// left and a right value column that are required by cond are answered with
// a hash lookup; the rest of cond is evaluated on each candidate pair, so a
// condition without such comparisons compares every pair. All right columns
// are added, renamed with a numeric suffix when their name is taken.
func (t *Table) JoinWith(right *Table, typ JoinType, cond Condition, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	plan, err := t.planConditionJoin(right, typ, cond)
	if err != nil {
		return nil, err
	}
	lk, rk, err := keyColumns(t, right, plan.Keys)
	if err != nil {
		return nil, err
	}
	var match evalFunc
	if plan.Residual != nil {
		if match, err = compileCondition(plan.Residual, t, right); err != nil {
			return nil, err
		}
	}
	pairs, err := matchRows(t, right, typ, columnsOf(lk), columnsOf(rk), match, o.parallelism)
	if err != nil {
		return nil, err
	}
	out, err := assembleJoin(t, right, typ, pairs, nil, nil, nil, o)
	if err != nil {
		return nil, err
	}
	o.logOp("join-with", t, out, slog.String("type", typ.String()), slog.String("plan", plan.Summary()))
	return out, nil
}

// ExplainJoin returns the plan JoinWith would use.
func (t *Table) ExplainJoin(right *Table, typ JoinType, cond Condition) (JoinPlan, error) {
	return t.planConditionJoin(right, typ, cond)
}

// planConditionJoin splits the top-level conjuncts of cond into hashable
// key equalities and a residual condition.
func (t *Table) planConditionJoin(right *Table, typ JoinType, cond Condition) (JoinPlan, error) {
	plan := JoinPlan{
		Type:      typ,
		Strategy:  StrategyNestedLoop,
		LeftRows:  t.rows,
		RightRows: right.rows,
	}
	var residual AllOf
	for _, c := range conjuncts(cond) {
		if k, ok := hashKey(t, right, c); ok {
			plan.Keys = append(plan.Keys, k)
			continue
		}
		residual = append(residual, c)
	}
	if len(plan.Keys) > 0 {
		plan.Strategy = StrategyHash
	}
	switch len(residual) {
	case 0:
	case 1:
		plan.Residual = residual[0]
	default:
		plan.Residual = residual
	}
	if plan.Residual != nil {
		if _, err := compileCondition(plan.Residual, t, right); err != nil {
			return JoinPlan{}, err
		}
	}
	return plan, nil
}

func conjuncts(c Condition) []Condition {
	all, ok := c.(AllOf)
	if !ok {
		if c == nil {
			return nil
		}
		return []Condition{c}
	}
	var out []Condition
	for _, m := range all {
		out = append(out, conjuncts(m)...)
	}
	return out
}

// hashKey recognizes left == right comparisons between value columns.
func hashKey(left, right *Table, c Condition) (JoinKey, bool) {
	cmp, ok := c.(Compare)
	if !ok || cmp.Op != OpEq {
		return JoinKey{}, false
	}
	var k JoinKey
	switch a := cmp.Left.(type) {
	case LeftColumn:
		b, ok := cmp.Right.(RightColumn)
		if !ok {
			return JoinKey{}, false
		}
		k = JoinKey{Left: a.Path, Right: b.Path}
	case RightColumn:
		b, ok := cmp.Right.(LeftColumn)
		if !ok {
			return JoinKey{}, false
		}
		k = JoinKey{Left: b.Path, Right: a.Path}
	default:
		return JoinKey{}, false
	}
	lc, err := left.Get(k.Left)
	if err != nil || lc.Kind() != KindValue {
		return JoinKey{}, false
	}
	rc, err := right.Get(k.Right)
	if err != nil || rc.Kind() != KindValue {
		return JoinKey{}, false
	}
	return k, true
}
