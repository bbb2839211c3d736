package thunderframe

import (
	"strings"

	"github.com/gobwas/glob"
)

// Predicate tests a column by its metadata.
type Predicate func(ColumnWithPath) bool

func IsGroup() Predicate {
	return func(c ColumnWithPath) bool { return c.Column.Kind() == KindGroup }
}

func IsFrame() Predicate {
	return func(c ColumnWithPath) bool { return c.Column.Kind() == KindFrame }
}

func IsValue() Predicate {
	return func(c ColumnWithPath) bool { return c.Column.Kind() == KindValue }
}

// IsList matches value columns holding collections.
func IsList() Predicate {
	return func(c ColumnWithPath) bool {
		return c.Column.Kind() == KindValue && c.Column.Type().IsCollection()
	}
}

func IsNumber() Predicate {
	return func(c ColumnWithPath) bool {
		return c.Column.Kind() == KindValue && c.Column.Type().IsNumber()
	}
}

func IsComparable() Predicate {
	return func(c ColumnWithPath) bool {
		return c.Column.Kind() == KindValue && c.Column.Type().IsComparable()
	}
}

func IsNullable() Predicate {
	return func(c ColumnWithPath) bool {
		return c.Column.Kind() == KindValue && c.Column.Type().Nullable
	}
}

// OfType matches value columns whose element kind is kind.
func OfType(kind TypeKind) Predicate {
	return func(c ColumnWithPath) bool {
		return c.Column.Kind() == KindValue && c.Column.Type().Kind == kind
	}
}

func NameContains(s string) Predicate {
	return func(c ColumnWithPath) bool { return strings.Contains(c.Name(), s) }
}

func NameStartsWith(prefix string) Predicate {
	return func(c ColumnWithPath) bool { return strings.HasPrefix(c.Name(), prefix) }
}

func NameEndsWith(suffix string) Predicate {
	return func(c ColumnWithPath) bool { return strings.HasSuffix(c.Name(), suffix) }
}

// NameGlob matches column names against a shell-style pattern. An invalid
// pattern matches nothing.
func NameGlob(pattern string) Predicate {
	g, err := glob.Compile(pattern)
	if err != nil {
		return func(ColumnWithPath) bool { return false }
	}
	return func(c ColumnWithPath) bool { return g.Match(c.Name()) }
}

func Not(p Predicate) Predicate {
	return func(c ColumnWithPath) bool { return !p(c) }
}

// And is true when every predicate is; with no predicates it is always true.
func And(preds ...Predicate) Predicate {
	return func(c ColumnWithPath) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

func Or(preds ...Predicate) Predicate {
	return func(c ColumnWithPath) bool {
		for _, p := range preds {
			if p(c) {
				return true
			}
		}
		return false
	}
}
