package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediapress/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	root       string
	outputDir  string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	root := filepath.Join(base, "media")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir root: %v", err)
	}
	outputDir := filepath.Join(base, "out")

	configPath := filepath.Join(homeDir, ".config", "mediapress", "config.toml")
	writeTestConfig(t, configPath, outputDir)

	return &cliTestEnv{
		baseDir:    base,
		root:       root,
		outputDir:  outputDir,
		configPath: configPath,
	}
}

// seedImages writes a small mixed tree under the env root.
func (e *cliTestEnv) seedImages(t *testing.T) {
	t.Helper()
	testsupport.WriteJPEG(t, filepath.Join(e.root, "photo.jpg"), 64, 48)
	testsupport.WritePNG(t, filepath.Join(e.root, "icons", "logo.png"), 32, 32)
	testsupport.WriteFile(t, filepath.Join(e.root, "notes.txt"), 0)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	flags = append(flags, "--log-level", "error")
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path, outputDir string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := fmt.Sprintf("[paths]\noutput_dir = %q\n\n[video]\nplatform = \"other\"\n", outputDir)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
