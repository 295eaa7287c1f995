package pipeline

import (
	"mediapress/internal/config"
	"mediapress/internal/encoding"
)

// RunConfig is the explicit configuration threaded through one batch.
type RunConfig struct {
	// Root is the input tree; empty means the working directory.
	Root string
	// OutputDir is resolved against the working directory when relative.
	OutputDir string
	Force     bool
	Quality   float64
	PNGPreset int
	PNGForce  bool
	Video     encoding.VideoEncodingConfig
}

// NewRunConfig builds a RunConfig from finalized configuration.
func NewRunConfig(cfg *config.Config, root string, force bool) RunConfig {
	return RunConfig{
		Root:      root,
		OutputDir: cfg.Paths.OutputDir,
		Force:     force,
		Quality:   cfg.Image.Quality,
		PNGPreset: cfg.Image.PNGPreset,
		PNGForce:  cfg.Image.PNGForce,
		Video:     encoding.NewVideoConfig(cfg.Video),
	}
}
