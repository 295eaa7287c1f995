package config

import (
	"fmt"
	"runtime"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVideo()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVideo() {
	c.Video.Profile = strings.ToLower(strings.TrimSpace(c.Video.Profile))
	if c.Video.Profile == "" {
		c.Video.Profile = defaultVideoProfile
	}
	c.Video.Platform = strings.ToLower(strings.TrimSpace(c.Video.Platform))
	if c.Video.Platform == "" || c.Video.Platform == PlatformAuto {
		c.Video.Platform = HostPlatform(runtime.GOOS)
	}
	c.Video.Preset = strings.TrimSpace(c.Video.Preset)
	c.Video.VideoCodec = strings.TrimSpace(c.Video.VideoCodec)
	c.Video.VideoBitrate = strings.TrimSpace(c.Video.VideoBitrate)
	c.Video.Resolution = strings.TrimSpace(c.Video.Resolution)
	c.Video.AudioCodec = strings.TrimSpace(c.Video.AudioCodec)
	c.Video.AudioBitrate = strings.TrimSpace(c.Video.AudioBitrate)

	args := make([]ExtraArg, 0, len(c.Video.ExtraArgs))
	for _, arg := range c.Video.ExtraArgs {
		key := strings.TrimSpace(arg.Key)
		if key == "" {
			continue
		}
		args = append(args, ExtraArg{Key: key, Value: strings.TrimSpace(arg.Value)})
	}
	c.Video.ExtraArgs = args
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// HostPlatform maps a GOOS value onto the platform family used for hardware
// encoder selection.
func HostPlatform(goos string) string {
	switch strings.ToLower(strings.TrimSpace(goos)) {
	case "darwin", "ios":
		return PlatformApple
	default:
		return PlatformOther
	}
}
