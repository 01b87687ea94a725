package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
)

// ANSI color codes for colorized text output.
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// colorHandler renders records as "TIME LEVEL MESSAGE key=value ..." with
// ANSI colors. Keys are gray; the level color tracks severity.
type colorHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newColorHandler(w io.Writer, opts *slog.HandlerOptions) *colorHandler {
	return &colorHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeValue(buf, h.replace(slog.Time(slog.TimeKey, r.Time)), colorGray)
	}

	h.writeValue(buf, h.replace(slog.Any(slog.LevelKey, r.Level)), levelColor(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeValue(buf,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)),
				colorGray,
			)
		}
	}

	h.writeValue(buf, slog.String(slog.MessageKey, r.Message), "")

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

// WithGroup is accepted but not rendered; attribute keys are left
// unqualified in colorized output.
func (h *colorHandler) WithGroup(string) slog.Handler { return h }

// replace applies the configured ReplaceAttr hook to a built-in attr.
func (h *colorHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	return a
}

// writeValue appends a colorized bare value, without its key.
func (h *colorHandler) writeValue(buf *bytes.Buffer, a slog.Attr, color string) {
	if a.Equal(slog.Attr{}) {
		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(color)
	buf.WriteString(a.Value.String())

	if color != "" {
		buf.WriteString(colorReset)
	}
}

// writeAttr appends "key=value" with a gray key, resolving group attrs
// recursively.
func (h *colorHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			h.writeAttr(buf, member)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	buf.WriteString(colorReset)

	value := a.Value.String()
	if a.Value.Kind() == slog.KindString {
		value = strconv.Quote(value)
	}

	buf.WriteString(value)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorCyan
	}
}
