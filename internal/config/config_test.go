package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mediapress/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if want := filepath.Join(cwd, "compress"); cfg.Paths.OutputDir != want {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, want)
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected empty log dir, got %q", cfg.Paths.LogDir)
	}
	if cfg.Image.Quality != 70.0 {
		t.Fatalf("unexpected default quality: %v", cfg.Image.Quality)
	}
	if cfg.Image.PNGPreset != 2 || !cfg.Image.PNGForce {
		t.Fatalf("unexpected png defaults: preset=%d force=%v", cfg.Image.PNGPreset, cfg.Image.PNGForce)
	}
	if cfg.Video.Profile != config.ProfileBaseline {
		t.Fatalf("unexpected default profile: %q", cfg.Video.Profile)
	}
	if cfg.Video.CRF != 23 || cfg.Video.Preset != "medium" {
		t.Fatalf("unexpected rate control defaults: crf=%d preset=%q", cfg.Video.CRF, cfg.Video.Preset)
	}
	if !cfg.Video.AutoResize {
		t.Fatal("expected auto resize enabled by default")
	}
	if want := config.HostPlatform(runtime.GOOS); cfg.Video.Platform != want {
		t.Fatalf("expected auto platform to resolve to %q, got %q", want, cfg.Video.Platform)
	}
	if cfg.FFmpegBinary() != "ffmpeg" || cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected tool names: %q %q", cfg.FFmpegBinary(), cfg.FFprobeBinary())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mediapress.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Image struct {
			Quality float64 `toml:"quality"`
		} `toml:"image"`
		Video struct {
			Profile       string            `toml:"profile"`
			MobileSupport bool              `toml:"mobile_support"`
			Platform      string            `toml:"platform"`
			ExtraArgs     []config.ExtraArg `toml:"extra_args"`
		} `toml:"video"`
	}
	custom := payload{}
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.Image.Quality = 55.5
	custom.Video.Profile = "Compat"
	custom.Video.MobileSupport = true
	custom.Video.Platform = "apple"
	custom.Video.ExtraArgs = []config.ExtraArg{
		{Key: " -movflags ", Value: "+faststart"},
		{Key: "  ", Value: "ignored"},
	}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempDir, "out") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Image.Quality != 55.5 {
		t.Fatalf("expected quality override, got %v", cfg.Image.Quality)
	}
	if cfg.Video.Profile != config.ProfileCompat {
		t.Fatalf("expected profile to be lower-cased, got %q", cfg.Video.Profile)
	}
	if !cfg.Video.MobileSupport || cfg.Video.Platform != config.PlatformApple {
		t.Fatalf("unexpected compat settings: mobile=%v platform=%q", cfg.Video.MobileSupport, cfg.Video.Platform)
	}
	if len(cfg.Video.ExtraArgs) != 1 || cfg.Video.ExtraArgs[0].Key != "-movflags" {
		t.Fatalf("expected blank extra args dropped and keys trimmed, got %#v", cfg.Video.ExtraArgs)
	}
	if cfg.Video.CRF != 23 {
		t.Fatalf("expected untouched fields to keep defaults, got crf=%d", cfg.Video.CRF)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mediapress.toml")
	if err := os.WriteFile(configPath, []byte("[video]\ncodec_typo = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[video]") {
		t.Fatalf("sample config missing video section: %s", contents)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Video.Profile != config.ProfileBaseline {
		t.Fatalf("unexpected sample profile: %q", cfg.Video.Profile)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"quality too high", func(c *config.Config) { c.Image.Quality = 101 }},
		{"quality negative", func(c *config.Config) { c.Image.Quality = -1 }},
		{"png preset", func(c *config.Config) { c.Image.PNGPreset = 7 }},
		{"profile", func(c *config.Config) { c.Video.Profile = "turbo" }},
		{"platform", func(c *config.Config) { c.Video.Platform = "amiga" }},
		{"crf too high", func(c *config.Config) { c.Video.CRF = 64 }},
		{"negative crf outside custom", func(c *config.Config) { c.Video.CRF = -1 }},
		{"baseline needs preset", func(c *config.Config) { c.Video.Preset = "" }},
		{"resolution", func(c *config.Config) { c.Video.Resolution = "720p" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Video.Platform = config.PlatformOther
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidateAllowsUnsetCRFForCustomProfile(t *testing.T) {
	cfg := config.Default()
	cfg.Video.Platform = config.PlatformOther
	cfg.Video.Profile = config.ProfileCustom
	cfg.Video.CRF = -1
	cfg.Video.Preset = ""
	cfg.Video.Resolution = "1280x720"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected custom profile to allow unset crf, got %v", err)
	}
}

func TestHostPlatform(t *testing.T) {
	if got := config.HostPlatform("darwin"); got != config.PlatformApple {
		t.Fatalf("darwin mapped to %q", got)
	}
	if got := config.HostPlatform("linux"); got != config.PlatformOther {
		t.Fatalf("linux mapped to %q", got)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "a", "b", "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories is not idempotent: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}
