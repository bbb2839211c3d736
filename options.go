package thunderframe

import "log/slog"

// Option configures a single table operation. Options that do not apply to an
// operation are ignored by it.
type Option func(*options)

type options struct {
	allowMissing    bool
	keepParentNames bool
	separator       string
	dropEmpty       bool
	dropNA          bool
	at              int
	after           Path
	addNewColumns   bool
	parallelism     int
	logger          *slog.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		separator:     "_",
		dropEmpty:     true,
		at:            -1,
		addNewColumns: true,
		parallelism:   1,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

// AllowMissing makes selectors skip names that do not resolve instead of
// failing with ErrMissingColumn, and makes Remove a no-op for absent paths.
func AllowMissing() Option {
	return func(o *options) { o.allowMissing = true }
}

// KeepParentNames makes Flatten prefix every promoted column with the names of
// the groups it was nested in.
func KeepParentNames() Option {
	return func(o *options) { o.keepParentNames = true }
}

// Separator sets the string placed between parent and child names by Flatten.
func Separator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// DropEmpty controls whether Explode drops rows whose collections are empty.
func DropEmpty(drop bool) Option {
	return func(o *options) { o.dropEmpty = drop }
}

// DropNA controls whether Implode skips missing values while aggregating.
func DropNA(drop bool) Option {
	return func(o *options) { o.dropNA = drop }
}

// At sets the position among the target siblings where inserted or moved
// columns are placed. Negative means append.
func At(index int) Option {
	return func(o *options) { o.at = index }
}

// After places inserted or moved columns right after the sibling at path.
func After(path Path) Option {
	return func(o *options) { o.after = path }
}

// AddNewColumns controls whether joins append the right table's non-key columns.
func AddNewColumns(add bool) Option {
	return func(o *options) { o.addNewColumns = add }
}

// Parallelism bounds the number of goroutines used to materialize columns.
// Values below 2 keep all work on the calling goroutine.
func Parallelism(n int) Option {
	return func(o *options) { o.parallelism = n }
}

// WithLogger overrides the package logger for one call.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
