package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"mediapress/internal/testsupport"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "FFmpeg:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "ffmpeg", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestColorizeOutcome(t *testing.T) {
	tests := []struct {
		outcome string
		color   string
	}{
		{"encoded", ansiGreen},
		{"skipped", ansiBlue},
		{"unsupported", ansiBlue},
		{"failed", ansiRed},
		{"other", ansiYellow},
	}
	for _, tc := range tests {
		if got := colorizeOutcome(tc.outcome, false); got != tc.outcome {
			t.Fatalf("uncolored %s: got %q", tc.outcome, got)
		}
		if got := colorizeOutcome(tc.outcome, true); got != tc.color+tc.outcome+ansiReset {
			t.Fatalf("colored %s: got %q", tc.outcome, got)
		}
	}
}

func TestRenderTableFooter(t *testing.T) {
	out := renderTable([]string{"File", "Size"}, [][]string{{"a.jpg", "1 KiB"}}, []columnAlignment{alignLeft, alignRight}, []string{"1 files"})
	for _, want := range []string{"FILE", "a.jpg", "1 KiB", "1 FILES"} {
		requireContains(t, out, want)
	}
	if renderTable(nil, nil, nil, nil) != "" {
		t.Fatal("expected empty render without headers")
	}
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== Configuration ==")
	requireContains(t, out, env.configPath)
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "FFmpeg:")
	requireContains(t, out, "[OK]")
}
