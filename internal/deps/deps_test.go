package deps

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStub(t *testing.T, dir, name string, exitCode int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := []byte("#!/bin/sh\nexit " + string(rune('0'+exitCode)) + "\n")
	if err := os.WriteFile(path, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheck(t *testing.T) {
	tmp := t.TempDir()
	ok := writeStub(t, tmp, "ffmpeg", 0)
	broken := writeStub(t, tmp, "broken", 3)

	tests := []struct {
		name      string
		command   string
		available bool
		detail    string
	}{
		{"working binary", ok, true, ""},
		{"failing version", broken, false, "-version failed"},
		{"missing binary", "clearly-not-present-binary", false, "not found"},
		{"unset command", "  ", false, "not configured"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Check(context.Background(), []Requirement{{Name: tc.name, Command: tc.command}})
			if len(got) != 1 {
				t.Fatalf("expected one status, got %d", len(got))
			}
			if got[0].Available != tc.available {
				t.Fatalf("available = %v, detail %q", got[0].Available, got[0].Detail)
			}
			if !strings.Contains(got[0].Detail, tc.detail) {
				t.Fatalf("detail %q missing %q", got[0].Detail, tc.detail)
			}
		})
	}
}

func TestCheckResolvesFromPath(t *testing.T) {
	tmp := t.TempDir()
	writeStub(t, tmp, "ffprobe", 0)
	t.Setenv("PATH", tmp)

	got := Check(context.Background(), []Requirement{{Name: "FFprobe", Command: "ffprobe"}})
	if !got[0].Available || got[0].Resolved != filepath.Join(tmp, "ffprobe") {
		t.Fatalf("unexpected status: %#v", got[0])
	}
}

func TestVideoRequirements(t *testing.T) {
	reqs := VideoRequirements("ffmpeg", "/opt/ffprobe")
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Optional || reqs[0].Command != "ffmpeg" {
		t.Fatalf("ffmpeg should be required: %#v", reqs[0])
	}
	if !reqs[1].Optional || reqs[1].Command != "/opt/ffprobe" {
		t.Fatalf("ffprobe should be optional: %#v", reqs[1])
	}
}
