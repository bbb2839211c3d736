package thunderframe

// Selector is a declarative column selection, resolved against a table by
// Resolve. The set of selectors is closed; compose them instead of writing
// new implementations.
type Selector interface {
	isSelector()
}

// ByName selects the column at Path. A path containing Wildcard components
// behaves like PathMatch.
type ByName struct {
	Path Path
}

// ByRef selects the column a previously resolved handle points to.
type ByRef struct {
	Ref ColumnWithPath
}

// All selects every top-level column.
type All struct{}

// Children selects the direct children of every group resolved by Of.
type Children struct {
	Of Selector
}

// AtAnyDepth selects every column below the root (Of == nil) or below each
// group resolved by Of, in depth-first pre-order. MaxDepth bounds the number
// of levels descended (0 is unlimited). IncludeFrames also descends into
// frame columns, whose children are resolved against the concatenation of
// their cells.
type AtAnyDepth struct {
	Of            Selector
	IncludeFrames bool
	MaxDepth      int
}

// Where keeps the columns of From that satisfy Pred.
type Where struct {
	From Selector
	Pred Predicate
}

// Union selects the columns of every member, first occurrence wins.
type Union []Selector

// Except selects the columns of From that are neither in Remove nor nested
// below a column of Remove.
type Except struct {
	From   Selector
	Remove Selector
}

type Take struct {
	From Selector
	N    int
}

type Drop struct {
	From Selector
	N    int
}

type TakeLast struct {
	From Selector
	N    int
}

type DropLast struct {
	From Selector
	N    int
}

// Simplify drops every column nested below another selected column.
type Simplify struct {
	From Selector
}

// PathMatch selects every column, at any depth, whose path matches Pattern.
type PathMatch struct {
	Pattern Path
}

func (ByName) isSelector()     {}
func (ByRef) isSelector()      {}
func (All) isSelector()        {}
func (Children) isSelector()   {}
func (AtAnyDepth) isSelector() {}
func (Where) isSelector()      {}
func (Union) isSelector()      {}
func (Except) isSelector()     {}
func (Take) isSelector()       {}
func (Drop) isSelector()       {}
func (TakeLast) isSelector()   {}
func (DropLast) isSelector()   {}
func (Simplify) isSelector()   {}
func (PathMatch) isSelector()  {}

// Col selects one column by the names on its path.
func Col(names ...string) Selector { return ByName{Path: PathOf(names...)} }

// Cols selects several top-level columns.
func Cols(names ...string) Selector {
	u := make(Union, len(names))
	for i, n := range names {
		u[i] = ByName{Path: Path{n}}
	}
	return u
}

// Paths selects several columns by path.
func Paths(paths ...Path) Selector {
	u := make(Union, len(paths))
	for i, p := range paths {
		u[i] = ByName{Path: p}
	}
	return u
}

func Ref(c ColumnWithPath) Selector { return ByRef{Ref: c} }

func AllCols() Selector { return All{} }

func ChildrenOf(of Selector) Selector { return Children{Of: of} }

// Filter keeps the columns of from satisfying every predicate.
func Filter(from Selector, preds ...Predicate) Selector {
	return Where{From: from, Pred: And(preds...)}
}

// ColsAtAnyDepth selects the columns at any depth satisfying every predicate.
func ColsAtAnyDepth(preds ...Predicate) Selector {
	if len(preds) == 0 {
		return AtAnyDepth{}
	}
	return Where{From: AtAnyDepth{}, Pred: And(preds...)}
}

// Roots selects the outermost columns of sel.
func Roots(sel Selector) Selector { return Simplify{From: sel} }

// Matching selects columns whose path matches a wildcard pattern.
func Matching(pattern Path) Selector { return PathMatch{Pattern: pattern} }
