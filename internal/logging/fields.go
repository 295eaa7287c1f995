package logging

import (
	"context"
	"log/slog"
	"time"

	"mediapress/internal/services"
)

const (
	// FieldComponent names the subsystem emitting the record.
	FieldComponent = "component"
	// FieldRunID correlates every record of one batch.
	FieldRunID = "run_id"
	// FieldFile is the root-relative input path.
	FieldFile = "file"
	// FieldStage is the per-file pipeline stage.
	FieldStage = "stage"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries the operator's next step.
	FieldErrorHint = "error_hint"
	// FieldImpact states what the warning costs the user.
	FieldImpact = "impact"
	// FieldDecisionType names the policy decision being logged.
	FieldDecisionType = "decision_type"
)

type Attr = slog.Attr

func String(key, value string) Attr { return slog.String(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// ByteSize is a byte count. JSON output keeps the exact number; the console
// renders it with binary units.
type ByteSize int64

// Bytes records a size in bytes.
func Bytes(key string, n int64) Attr { return slog.Any(key, ByteSize(n)) }

// Args converts attrs to the variadic form slog methods accept.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

// NewComponentLogger tags logger with a component name. A nil logger yields a
// discarding one.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// WithContext adds the run, file, and stage carried by ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	var fields []Attr
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, String(FieldRunID, id))
	}
	if file, ok := services.FileFromContext(ctx); ok {
		fields = append(fields, String(FieldFile, file))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, String(FieldStage, stage))
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}

// WarnWithContext logs a warning that always carries event_type, error_hint,
// and impact. Missing fields get generic defaults.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	attrs = withDefault(attrs, FieldEventType, eventType)
	attrs = withDefault(attrs, FieldErrorHint, "check logs for details")
	attrs = withDefault(attrs, FieldImpact, "file handled with warnings")
	logger.Warn(msg, Args(attrs...)...)
}

// ErrorWithContext logs an error that always carries event_type and error_hint.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	attrs = withDefault(attrs, FieldEventType, eventType)
	attrs = withDefault(attrs, FieldErrorHint, "check logs for details")
	logger.Error(msg, Args(attrs...)...)
}

func withDefault(attrs []Attr, key, value string) []Attr {
	for _, a := range attrs {
		if a.Key == key {
			return attrs
		}
	}
	return append(attrs, String(key, value))
}

// Decision is a policy choice: which codec, whether to resize, whether to skip.
type Decision struct {
	Type   string
	Result string
	Reason string
	// Options lists the alternatives considered, if any.
	Options string
}

func (d Decision) attrs() []Attr {
	attrs := []Attr{
		String(FieldDecisionType, d.Type),
		String("decision_result", d.Result),
		String("decision_reason", d.Reason),
	}
	if d.Options != "" {
		attrs = append(attrs, String("decision_options", d.Options))
	}
	return attrs
}

// LogDecision records d at info level.
func LogDecision(logger *slog.Logger, msg string, d Decision, extra ...Attr) {
	if logger == nil {
		return
	}
	logger.Info(msg, Args(append(d.attrs(), extra...)...)...)
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(nopHandler{})
}
