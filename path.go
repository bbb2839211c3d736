package thunderframe

import (
	"slices"
	"strconv"
	"strings"

	"rsc.io/ordered"
)

// Wildcard is the path component that matches any single name.
const Wildcard = "*"

// Path is the sequence of names leading from the table root to a column.
type Path []string

func PathOf(names ...string) Path {
	return Path(slices.Clone(names))
}

func (p Path) Len() int { return len(p) }

// Name returns the last component, or "" for the root path.
func (p Path) Name() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path without its last component.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return slices.Clone(p[:len(p)-1])
}

func (p Path) Append(names ...string) Path {
	out := make(Path, 0, len(p)+len(names))
	out = append(out, p...)
	return append(out, names...)
}

func (p Path) Prepend(names ...string) Path {
	out := make(Path, 0, len(p)+len(names))
	out = append(out, names...)
	return append(out, p...)
}

func (p Path) AppendWildcard() Path { return p.Append(Wildcard) }

func (p Path) PrependWildcard() Path { return p.Prepend(Wildcard) }

// WithName returns p with its last component replaced.
func (p Path) WithName(name string) Path {
	if len(p) == 0 {
		return Path{name}
	}
	out := slices.Clone(p)
	out[len(out)-1] = name
	return out
}

func (p Path) Equal(o Path) bool {
	return slices.Equal(p, o)
}

// Matches reports whether p and o have the same length and every pair of
// components is equal or contains a wildcard.
func (p Path) Matches(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] && p[i] != Wildcard && o[i] != Wildcard {
			return false
		}
	}
	return true
}

// HasWildcard reports whether any component is the wildcard.
func (p Path) HasWildcard() bool {
	return slices.Contains(p, Wildcard)
}

// ReplaceLastWildcardWithIndex substitutes the last wildcard with the decimal
// form of i. Paths without wildcards are returned unchanged.
func (p Path) ReplaceLastWildcardWithIndex(i int) Path {
	out := slices.Clone(p)
	for k := len(out) - 1; k >= 0; k-- {
		if out[k] == Wildcard {
			out[k] = strconv.Itoa(i)
			break
		}
	}
	return out
}

// IsAncestorOf reports whether p is a strict prefix of o.
func (p Path) IsAncestorOf(o Path) bool {
	return len(p) < len(o) && slices.Equal(p, o[:len(p)])
}

// HasPrefix reports whether prefix is a (not necessarily strict) prefix of p.
func (p Path) HasPrefix(prefix Path) bool {
	return len(prefix) <= len(p) && slices.Equal(prefix, p[:len(prefix)])
}

// key returns a map key unique to the path.
func (p Path) key() string {
	parts := make([]any, len(p))
	for i, name := range p {
		parts[i] = name
	}
	return string(ordered.Encode(parts...))
}

// String renders p as a JSON path, e.g. $["store"]["book"][*].
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, name := range p {
		if name == Wildcard {
			b.WriteString("[*]")
			continue
		}
		b.WriteByte('[')
		b.WriteString(strconv.Quote(name))
		b.WriteByte(']')
	}
	return b.String()
}

// ParsePath parses the JSON path form produced by Path.String. Bare integer
// indexes such as [0] are accepted and kept as decimal components.
func ParsePath(s string) (Path, error) {
	if !strings.HasPrefix(s, "$") {
		return nil, ErrMalformedPath(s, "missing leading $")
	}
	rest := s[1:]
	path := Path{}
	for len(rest) > 0 {
		if rest[0] != '[' {
			return nil, ErrMalformedPath(s, "expected [")
		}
		rest = rest[1:]
		switch {
		case strings.HasPrefix(rest, "*]"):
			path = append(path, Wildcard)
			rest = rest[2:]
		case strings.HasPrefix(rest, `"`):
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, ErrMalformedPath(s, err.Error())
			}
			name, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, ErrMalformedPath(s, err.Error())
			}
			rest = rest[len(quoted):]
			if !strings.HasPrefix(rest, "]") {
				return nil, ErrMalformedPath(s, "expected ]")
			}
			path = append(path, name)
			rest = rest[1:]
		default:
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, ErrMalformedPath(s, "unterminated index")
			}
			if _, err := strconv.Atoi(rest[:end]); err != nil {
				return nil, ErrMalformedPath(s, "bad index "+rest[:end])
			}
			path = append(path, rest[:end])
			rest = rest[end+1:]
		}
	}
	return path, nil
}

// ColumnWithPath pairs a resolved column with its location in the column tree.
type ColumnWithPath struct {
	Column Column
	Path   Path
}

func (c ColumnWithPath) Name() string { return c.Path.Name() }

// Depth is the number of groups enclosing the column plus one.
func (c ColumnWithPath) Depth() int { return len(c.Path) }
