package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// consoleHandler writes one header line per record followed by an indented
// line per attribute:
//
//	14:02:11 WARN [walker] photos/raw – directory unreadable
//	    - error_hint: check permissions
type consoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  []field
	prefix string
}

type field struct {
	key   string
	value slog.Value
}

func newConsoleHandler(w io.Writer, level slog.Leveler) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make([]field, 0, len(h.attrs)+record.NumAttrs())
	fields = append(fields, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.prefix, attr)
		return true
	})

	var component, file string
	var buf bytes.Buffer
	body := make([]field, 0, len(fields))
	for _, f := range fields {
		switch f.key {
		case FieldComponent:
			component = plainValue(f.value)
		case FieldFile:
			file = plainValue(f.value)
		case FieldRunID:
			// JSON output keeps run ids; the console omits them.
		default:
			body = append(body, f)
		}
	}

	if !record.Time.IsZero() {
		buf.WriteString(record.Time.Format(consoleTimeLayout))
		buf.WriteByte(' ')
	}
	buf.WriteString(levelLabel(record.Level))
	if component != "" {
		buf.WriteString(" [" + component + "]")
	}
	if file != "" {
		buf.WriteString(" " + file)
	}
	buf.WriteString(" – ")
	buf.WriteString(strings.TrimSpace(record.Message))
	buf.WriteByte('\n')
	for _, f := range body {
		buf.WriteString("    - ")
		buf.WriteString(f.key)
		buf.WriteString(": ")
		buf.WriteString(consoleValue(f.value))
		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]field(nil), h.attrs...)
	for _, attr := range attrs {
		clone.attrs = appendField(clone.attrs, h.prefix, attr)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// appendField flattens groups into dotted keys.
func appendField(dst []field, prefix string, attr slog.Attr) []field {
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		next := prefix
		if attr.Key != "" {
			next = prefix + attr.Key + "."
		}
		for _, child := range value.Group() {
			dst = appendField(dst, next, child)
		}
		return dst
	}
	return append(dst, field{key: prefix + attr.Key, value: value})
}
