package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// newJSONHandler emits one object per record with ts, level, and msg keys.
// Byte sizes stay numeric.
func newJSONHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339Nano))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			}
			if size, ok := attr.Value.Any().(ByteSize); ok {
				attr.Value = slog.Int64Value(int64(size))
			}
			return attr
		},
	})
}
