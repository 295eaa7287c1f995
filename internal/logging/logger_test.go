package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediapress/internal/config"
	"mediapress/internal/services"
)

func newTestLogger(t *testing.T, format string, level slog.Level) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	var handler slog.Handler
	switch format {
	case "json":
		handler = newJSONHandler(&buf, level)
	default:
		handler = newConsoleHandler(&buf, level)
	}
	return slog.New(handler), &buf
}

func TestConsoleHandlerFormatsComponentAndFile(t *testing.T) {
	logger, buf := newTestLogger(t, "console", slog.LevelInfo)
	logger = NewComponentLogger(logger, "pipeline")
	logger.Info("encoded", String(FieldFile, "clips/a.mov"), String(FieldRunID, "abc"), Int("crf", 23))

	out := buf.String()
	if !strings.Contains(out, "INFO [pipeline] clips/a.mov – encoded") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "    - crf: 23") {
		t.Fatalf("expected crf field line, got %q", out)
	}
	if strings.Contains(out, "abc") {
		t.Fatalf("run id should be hidden on console, got %q", out)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	logger, buf := newTestLogger(t, "console", slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	logger, buf := newTestLogger(t, "console", slog.LevelInfo)
	logger.Info("msg", String("path", "My Videos/a.mp4"))
	if !strings.Contains(buf.String(), `path: "My Videos/a.mp4"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerFlattensGroups(t *testing.T) {
	logger, buf := newTestLogger(t, "console", slog.LevelInfo)
	logger.WithGroup("probe").Info("dims", Int("width", 3840))
	if !strings.Contains(buf.String(), "probe.width: 3840") {
		t.Fatalf("expected grouped key, got %q", buf.String())
	}
}

func TestJSONHandlerRenamesCoreKeys(t *testing.T) {
	logger, buf := newTestLogger(t, "json", slog.LevelInfo)
	logger.Info("done", String(FieldRunID, "run-1"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	for _, key := range []string{"ts", "level", "msg", FieldRunID} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing key %q in %v", key, payload)
		}
	}
	if payload["level"] != "info" {
		t.Fatalf("expected lower-case level, got %v", payload["level"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Format = "console"

	logger, closeLog, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("hello")
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}
	if err := closeLog(); err == nil {
		t.Fatal("second close should report the file already closed")
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("log file missing entry: %s", data)
	}
}

func TestNewWithoutFileHasNopClose(t *testing.T) {
	var buf bytes.Buffer
	logger, closeLog, err := New(Options{Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if closeLog == nil {
		t.Fatal("close function must not be nil")
	}
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
	logger.Info("still writes")
	if !strings.Contains(buf.String(), "still writes") {
		t.Fatalf("console output missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range tests {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestWithContextAddsFields(t *testing.T) {
	logger, buf := newTestLogger(t, "json", slog.LevelInfo)
	ctx := services.WithRunID(context.Background(), "run-7")
	ctx = services.WithFile(ctx, "a/b.png")
	ctx = services.WithStage(ctx, "encode")

	WithContext(ctx, logger).Info("tagged")

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if payload[FieldRunID] != "run-7" || payload[FieldFile] != "a/b.png" || payload[FieldStage] != "encode" {
		t.Fatalf("unexpected context fields: %v", payload)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logger, buf := newTestLogger(t, "json", slog.LevelInfo)
	WarnWithContext(logger, "probe failed", "probe_failed", String(FieldErrorHint, "check ffprobe"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if payload[FieldEventType] != "probe_failed" {
		t.Fatalf("event_type = %v", payload[FieldEventType])
	}
	if payload[FieldErrorHint] != "check ffprobe" {
		t.Fatalf("error_hint should keep caller value, got %v", payload[FieldErrorHint])
	}
	if _, ok := payload[FieldImpact]; !ok {
		t.Fatal("impact default missing")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should not be enabled")
	}
	WarnWithContext(nil, "ignored", "none")
}

func TestConsoleHandlerHumanizesBytes(t *testing.T) {
	logger, buf := newTestLogger(t, "console", slog.LevelInfo)
	logger.Info("encoded", Bytes("original", 3*1024*1024))
	if !strings.Contains(buf.String(), "original: 3.0 MiB") {
		t.Fatalf("expected humanized size, got %q", buf.String())
	}
}

func TestJSONHandlerKeepsExactBytes(t *testing.T) {
	logger, buf := newTestLogger(t, "json", slog.LevelInfo)
	logger.Info("encoded", Bytes("original", 1234567))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if payload["original"] != float64(1234567) {
		t.Fatalf("expected exact byte count, got %v", payload["original"])
	}
}

func TestTeeHandlerWritesBoth(t *testing.T) {
	var console, file bytes.Buffer
	logger := slog.New(teeHandler{
		newConsoleHandler(&console, slog.LevelWarn),
		newJSONHandler(&file, slog.LevelDebug),
	})
	logger = NewComponentLogger(logger, "runner")
	logger.Debug("quiet")
	logger.Warn("loud")

	if strings.Contains(console.String(), "quiet") || !strings.Contains(console.String(), "[runner]") {
		t.Fatalf("unexpected console output: %q", console.String())
	}
	lines := strings.Split(strings.TrimSpace(file.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected both records in json sink, got %q", file.String())
	}
}

func TestLogDecision(t *testing.T) {
	logger, buf := newTestLogger(t, "json", slog.LevelInfo)
	LogDecision(logger, "codec decision", Decision{Type: "video_codec", Result: "libx264", Reason: "baseline profile"}, Int("crf", 23))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if payload[FieldDecisionType] != "video_codec" || payload["decision_result"] != "libx264" || payload["crf"] != float64(23) {
		t.Fatalf("unexpected decision payload: %v", payload)
	}
	if _, ok := payload["decision_options"]; ok {
		t.Fatal("empty options should be omitted")
	}
}
