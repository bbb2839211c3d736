package thunderframe

import (
	"fmt"
	"strings"
)

// Comparison operators. Each is a set of the outcomes less, equal and
// greater, so Le is Lt|Eq and Ne is Lt|Gt.
const (
	OpEq = OpType(0b0010)
	OpNe = OpType(0b0101)
	OpGt = OpType(0b0100)
	OpLt = OpType(0b0001)
	OpGe = OpType(0b0110)
	OpLe = OpType(0b0011)
)

type OpType uint8

func (op OpType) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpGe:
		return ">="
	case OpLe:
		return "<="
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Condition is a boolean expression over a pair of rows, one from each side
// of a JoinWith. The set of conditions is closed.
type Condition interface {
	isCondition()
}

// Operand is one side of a Compare.
type Operand interface {
	isOperand()
}

// LeftColumn reads the column at Path of the left row.
type LeftColumn struct {
	Path Path
}

// RightColumn reads the column at Path of the right row.
type RightColumn struct {
	Path Path
}

// Literal is a constant.
type Literal struct {
	Value any
}

func (LeftColumn) isOperand()  {}
func (RightColumn) isOperand() {}
func (Literal) isOperand()     {}

// Compare tests Left against Right. Eq and Ne use exact equality, the same
// as equality joins and GroupBy; the ordering operators compare numbers by
// value across integer and float types and are false for values without a
// common ordering.
type Compare struct {
	Left  Operand
	Op    OpType
	Right Operand
}

// AllOf holds when every member holds; empty is true.
type AllOf []Condition

// AnyOf holds when some member holds; empty is false.
type AnyOf []Condition

// Negate inverts Cond.
type Negate struct {
	Cond Condition
}

// RowFunc is an arbitrary test over the joined row.
type RowFunc func(JoinedRow) bool

func (Compare) isCondition() {}
func (AllOf) isCondition()   {}
func (AnyOf) isCondition()   {}
func (Negate) isCondition()  {}
func (RowFunc) isCondition() {}

func LeftCol(names ...string) Operand  { return LeftColumn{Path: PathOf(names...)} }
func RightCol(names ...string) Operand { return RightColumn{Path: PathOf(names...)} }
func Lit(v any) Operand                { return Literal{Value: v} }

func Eq(left, right Operand) Condition { return Compare{Left: left, Op: OpEq, Right: right} }
func Ne(left, right Operand) Condition { return Compare{Left: left, Op: OpNe, Right: right} }
func Gt(left, right Operand) Condition { return Compare{Left: left, Op: OpGt, Right: right} }
func Lt(left, right Operand) Condition { return Compare{Left: left, Op: OpLt, Right: right} }
func Ge(left, right Operand) Condition { return Compare{Left: left, Op: OpGe, Right: right} }
func Le(left, right Operand) Condition { return Compare{Left: left, Op: OpLe, Right: right} }

// outcome maps a comparison result onto the operator bits.
func outcome(cmp int) OpType {
	switch {
	case cmp < 0:
		return OpLt
	case cmp > 0:
		return OpGt
	}
	return OpEq
}

// evalFunc evaluates a compiled condition for left row l and right row r.
type evalFunc func(l, r int) bool

type operandFunc func(l, r int) any

func compileOperand(op Operand, left, right *Table) (operandFunc, error) {
	switch o := op.(type) {
	case LeftColumn:
		c, err := left.Get(o.Path)
		if err != nil {
			return nil, err
		}
		return func(l, _ int) any { return c.Get(l) }, nil
	case RightColumn:
		c, err := right.Get(o.Path)
		if err != nil {
			return nil, err
		}
		return func(_, r int) any { return c.Get(r) }, nil
	case Literal:
		return func(int, int) any { return o.Value }, nil
	}
	return nil, ErrUnsupportedCondition(op)
}

func compileCondition(c Condition, left, right *Table) (evalFunc, error) {
	switch cond := c.(type) {
	case nil:
		return func(int, int) bool { return true }, nil
	case Compare:
		a, err := compileOperand(cond.Left, left, right)
		if err != nil {
			return nil, err
		}
		b, err := compileOperand(cond.Right, left, right)
		if err != nil {
			return nil, err
		}
		switch cond.Op {
		case OpEq:
			return func(l, r int) bool { return valuesEqual(a(l, r), b(l, r)) }, nil
		case OpNe:
			return func(l, r int) bool { return !valuesEqual(a(l, r), b(l, r)) }, nil
		case OpLt, OpLe, OpGt, OpGe:
			op := cond.Op
			return func(l, r int) bool {
				cmp, ok := compareValues(a(l, r), b(l, r))
				return ok && op&outcome(cmp) != 0
			}, nil
		}
		return nil, ErrUnsupportedOperator(cond.Op)
	case AllOf:
		fns, err := compileAll(cond, left, right)
		if err != nil {
			return nil, err
		}
		return func(l, r int) bool {
			for _, fn := range fns {
				if !fn(l, r) {
					return false
				}
			}
			return true
		}, nil
	case AnyOf:
		fns, err := compileAll(cond, left, right)
		if err != nil {
			return nil, err
		}
		return func(l, r int) bool {
			for _, fn := range fns {
				if fn(l, r) {
					return true
				}
			}
			return false
		}, nil
	case Negate:
		fn, err := compileCondition(cond.Cond, left, right)
		if err != nil {
			return nil, err
		}
		return func(l, r int) bool { return !fn(l, r) }, nil
	case RowFunc:
		if cond == nil {
			return nil, ErrUnsupportedCondition(c)
		}
		return func(l, r int) bool {
			return cond(&joinedRow{left: left.Row(l), right: right.Row(r)})
		}, nil
	}
	return nil, ErrUnsupportedCondition(c)
}

func compileAll(conds []Condition, left, right *Table) ([]evalFunc, error) {
	fns := make([]evalFunc, len(conds))
	for i, c := range conds {
		fn, err := compileCondition(c, left, right)
		if err != nil {
			return nil, err
		}
		fns[i] = fn
	}
	return fns, nil
}

func conditionString(c Condition) string {
	switch cond := c.(type) {
	case nil:
		return "true"
	case Compare:
		return operandString(cond.Left) + " " + cond.Op.String() + " " + operandString(cond.Right)
	case AllOf:
		return joinConditions(cond, " && ", "true")
	case AnyOf:
		return joinConditions(cond, " || ", "false")
	case Negate:
		return "!(" + conditionString(cond.Cond) + ")"
	case RowFunc:
		return "func(row)"
	}
	return fmt.Sprintf("%T", c)
}

func joinConditions(conds []Condition, sep, empty string) string {
	if len(conds) == 0 {
		return empty
	}
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = conditionString(c)
		if _, nested := c.(Compare); !nested {
			parts[i] = "(" + parts[i] + ")"
		}
	}
	return strings.Join(parts, sep)
}

func operandString(op Operand) string {
	switch o := op.(type) {
	case LeftColumn:
		return "left" + strings.TrimPrefix(o.Path.String(), "$")
	case RightColumn:
		return "right" + strings.TrimPrefix(o.Path.String(), "$")
	case Literal:
		return fmt.Sprintf("%#v", o.Value)
	}
	return fmt.Sprintf("%T", op)
}
