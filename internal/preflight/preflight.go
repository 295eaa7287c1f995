package preflight

import (
	"context"

	"mediapress/internal/config"
	"mediapress/internal/deps"
	"mediapress/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
	// Marker classifies a failed required check.
	Marker error
}

// Options selects which checks apply to a run.
type Options struct {
	// OutputDir is the absolute output root.
	OutputDir string
	// NeedVideo enables the encoder checks.
	NeedVideo bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if opts.OutputDir != "" {
		results = append(results, CheckOutputWritable("Output directory", opts.OutputDir))
	}
	if opts.NeedVideo {
		results = append(results, CheckBinaries(ctx, deps.VideoRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary()))...)
	}
	return results
}

// Err returns the first failed required check as a classified error, or nil.
func Err(results []Result) error {
	for _, r := range results {
		if r.Passed || r.Optional {
			continue
		}
		marker := r.Marker
		if marker == nil {
			marker = services.ErrConfiguration
		}
		return services.Wrap(marker, "preflight", r.Name, r.Detail, nil)
	}
	return nil
}

// Warnings returns failed optional checks.
func Warnings(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed && r.Optional {
			out = append(out, r)
		}
	}
	return out
}
