package engine

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with engine-specific operation helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that writes human-readable text to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that writes JSON lines to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// LogRebuild logs a result view rebuild.
func (l *Logger) LogRebuild(ctx context.Context, criteria FilterCriteria, state SortState, total, results int, cached bool) {
	l.DebugContext(ctx, "result view rebuilt",
		"element", criteria.Element,
		"line", criteria.Line,
		"formula_search", criteria.FormulaSearch,
		"name_search", criteria.NameSearch,
		"sort_column", state.Column.String(),
		"ascending", state.Ascending,
		"total", total,
		"results", results,
		"filter_cached", cached,
	)
}

// LogHistogram logs a histogram request.
func (l *Logger) LogHistogram(ctx context.Context, values int, binWidth float64, h *Histogram, err error) {
	if err != nil {
		l.WarnContext(ctx, "histogram not built",
			"values", values,
			"bin_width", binWidth,
			"error", err,
		)
		return
	}
	attrs := []any{
		"values", values,
		"bin_width", binWidth,
		"bins", h.Bins(),
		"low", h.Low,
		"high", h.High,
	}
	if h.Curve == nil {
		attrs = append(attrs, "curve_skipped", h.CurveSkipped)
	} else {
		attrs = append(attrs, "bandwidth", h.Bandwidth)
	}
	l.DebugContext(ctx, "histogram built", attrs...)
}

// LogLoad logs a dataset load.
func (l *Logger) LogLoad(ctx context.Context, source string, ds *Dataset, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset load failed",
			"source", source,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "dataset loaded",
		"source", source,
		"records", ds.Len(),
		"elements", len(ds.elements),
	)
}
