package thunderframe

import (
	"context"
	"log/slog"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(slog.New(slog.DiscardHandler))
}

// Logger returns the logger used by operations that were not given WithLogger.
func Logger() *slog.Logger {
	return defaultLogger.Load()
}

// SetLogger replaces the package logger. A nil logger restores the default,
// which discards everything.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	defaultLogger.Store(l)
}

// logOp records one finished table operation at debug level.
func (o *options) logOp(op string, in, out *Table, attrs ...any) {
	if !o.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs = append(attrs,
		slog.Int("rows_in", in.rows), slog.Int("cols_in", len(in.columns)),
		slog.Int("rows_out", out.rows), slog.Int("cols_out", len(out.columns)))
	o.logger.Debug(op, attrs...)
}
