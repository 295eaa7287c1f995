package config

import (
	"errors"
	"fmt"
	"regexp"
)

var resolutionPattern = regexp.MustCompile(`^\d+x\d+$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateImage(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateImage() error {
	if c.Image.Quality < 0 || c.Image.Quality > 100 {
		return fmt.Errorf("image.quality must be between 0 and 100 (got %g)", c.Image.Quality)
	}
	if c.Image.PNGPreset < 0 || c.Image.PNGPreset > 6 {
		return fmt.Errorf("image.png_preset must be between 0 and 6 (got %d)", c.Image.PNGPreset)
	}
	return nil
}

func (c *Config) validateVideo() error {
	switch c.Video.Profile {
	case ProfileBaseline, ProfileCompat, ProfileCustom:
	default:
		return fmt.Errorf("video.profile must be one of baseline, compat, custom (got %q)", c.Video.Profile)
	}
	switch c.Video.Platform {
	case PlatformApple, PlatformOther:
	default:
		return fmt.Errorf("video.platform must be one of auto, apple, other (got %q)", c.Video.Platform)
	}
	if c.Video.CRF > 63 {
		return fmt.Errorf("video.crf must be at most 63 (got %d)", c.Video.CRF)
	}
	if c.Video.CRF < 0 && c.Video.Profile != ProfileCustom {
		return fmt.Errorf("video.crf must be between 0 and 63 for the %s profile (got %d)", c.Video.Profile, c.Video.CRF)
	}
	if c.Video.Profile == ProfileBaseline && c.Video.Preset == "" {
		return errors.New("video.preset must be set for the baseline profile")
	}
	if c.Video.Resolution != "" && !resolutionPattern.MatchString(c.Video.Resolution) {
		return fmt.Errorf("video.resolution must look like WIDTHxHEIGHT (got %q)", c.Video.Resolution)
	}
	return nil
}
