package thunderframe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

var (
	ErrMissingColumn  = errors.New("missing column")
	ErrNameCollision  = errors.New("name collision")
	ErrInvalidPath    = errors.New("invalid path")
	ErrLengthMismatch = errors.New("length mismatch")
	ErrTypeMismatch   = errors.New("type mismatch")
)

var (
	ErrColumnNotFound = func(path Path, siblings []string) error {
		if hint := suggestName(path.Name(), siblings); hint != "" {
			return fmt.Errorf("%w: %s (did you mean %q?)", ErrMissingColumn, path, hint)
		}
		return fmt.Errorf("%w: %s", ErrMissingColumn, path)
	}
	ErrDuplicateColumn = func(path Path) error { return fmt.Errorf("%w: column %s already exists", ErrNameCollision, path) }
	ErrEmptyPath       = func(op string) error { return fmt.Errorf("%w: %s requires a non-empty path", ErrInvalidPath, op) }
	ErrNotAGroup       = func(path Path) error { return fmt.Errorf("%w: %s is not a column group", ErrInvalidPath, path) }
	ErrInsideFrame     = func(path Path) error {
		return fmt.Errorf("%w: %s points inside a frame column and cannot be rewritten", ErrInvalidPath, path)
	}
	ErrNotASibling = func(anchor, parent Path) error {
		return fmt.Errorf("%w: %s is not a direct child of %s", ErrInvalidPath, anchor, parent)
	}
	ErrInvalidPathf = func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidPath}, args...)...)
	}
	ErrMalformedPath = func(s string, reason string) error {
		return fmt.Errorf("%w: cannot parse %q: %s", ErrInvalidPath, s, reason)
	}
	ErrColumnLength = func(name string, want, got int) error {
		return fmt.Errorf("%w: column %s has %d rows, expected %d", ErrLengthMismatch, name, got, want)
	}
	ErrRowOutOfRange = func(row, rows int) error {
		return fmt.Errorf("%w: row %d is out of range [0..%d)", ErrLengthMismatch, row, rows)
	}
	ErrKindMismatch = func(path Path, want ColumnKind, got ColumnKind) error {
		return fmt.Errorf("%w: %s is a %s column, expected %s", ErrTypeMismatch, path, got, want)
	}
	ErrMixedKinds = func(name string, a, b ColumnKind) error {
		return fmt.Errorf("%w: column %s is %s in one table and %s in another", ErrTypeMismatch, name, a, b)
	}
	ErrValueType = func(path Path, v any, want string) error {
		return fmt.Errorf("%w: value %v (%T) in %s is not %s", ErrTypeMismatch, v, v, path, want)
	}
	ErrUnkeyable = func(v any) error {
		return fmt.Errorf("%w: value of type %T cannot be used as a key", ErrTypeMismatch, v)
	}
	ErrUnsupportedSelector  = func(sel any) error { return fmt.Errorf("unsupported selector type: %T", sel) }
	ErrUnsupportedCondition = func(c any) error { return fmt.Errorf("unsupported join condition type: %T", c) }
	ErrUnsupportedOperator  = func(op OpType) error { return fmt.Errorf("unsupported operator: %d", op) }
	ErrNoJoinKeys           = func() error {
		return fmt.Errorf("%w: the tables share no top-level column to join on", ErrMissingColumn)
	}
	ErrJoinKeyCount = func(left, right int) error {
		return fmt.Errorf("%w: %d left key columns vs %d right key columns", ErrLengthMismatch, left, right)
	}
)

var nameMetric = metrics.NewLevenshtein()

// suggestName returns the sibling closest to name, or "" when nothing is close.
func suggestName(name string, siblings []string) string {
	best, bestScore := "", 0.5
	for _, s := range siblings {
		if strings.EqualFold(s, name) {
			return s
		}
		if score := strutil.Similarity(name, s, nameMetric); score >= bestScore {
			best, bestScore = s, score
		}
	}
	return best
}
