package log

import (
	"context"
	"io"
	"log/slog"
	"math"
)

// DefaultPrecision is the number of decimals kept in float attributes.
const DefaultPrecision = 4

// RoundingHandler wraps an slog.Handler and rounds float64 attribute values
// to a fixed number of decimals before passing records on.
type RoundingHandler struct {
	// handler is the underlying slog handler that receives rounded records.
	handler slog.Handler

	// scale is 10^precision.
	scale float64
}

// NewRoundingHandler creates a RoundingHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. A negative precision
// is treated as zero.
func NewRoundingHandler(handler slog.Handler, precision int) *RoundingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	precision = max(precision, 0)
	return &RoundingHandler{handler: handler, scale: math.Pow10(precision)}
}

// Enabled reports whether the handler handles records at the given level.
func (h *RoundingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rounds the record's attributes and passes it to the underlying handler.
func (h *RoundingHandler) Handle(ctx context.Context, r slog.Record) error {
	rounded := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rounded.AddAttrs(h.roundAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rounded)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *RoundingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	roundedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		roundedAttrs[i] = h.roundAttr(a)
	}
	return &RoundingHandler{handler: h.handler.WithAttrs(roundedAttrs), scale: h.scale}
}

// WithGroup returns a new handler with the given group name.
func (h *RoundingHandler) WithGroup(name string) slog.Handler {
	return &RoundingHandler{handler: h.handler.WithGroup(name), scale: h.scale}
}

// roundAttr rounds a single attribute, recursively handling groups.
func (h *RoundingHandler) roundAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		roundedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			roundedAttrs[i] = h.roundAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(roundedAttrs...)}
	case slog.KindFloat64:
		v := a.Value.Float64()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return a
		}
		return slog.Float64(a.Key, math.Round(v*h.scale)/h.scale)
	default:
		return a
	}
}

// level returns the slog level for verbose or quiet output.
func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewLogger creates a text slog.Logger writing to w.
// With verbose set the level is Debug, otherwise Warn.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(verbose)})
	return slog.New(NewRoundingHandler(textHandler, DefaultPrecision))
}

// NewJSONLogger creates a JSON slog.Logger writing to w.
// Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level(verbose)})
	return slog.New(NewRoundingHandler(jsonHandler, DefaultPrecision))
}
