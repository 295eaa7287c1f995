package ffprobe

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// DimensionArgs returns the ffprobe arguments that print the first video
// stream's size as a bare "width,height" line.
func DimensionArgs(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=p=0",
		path,
	}
}

// ProbeDimensions runs ffprobe against path and returns its raw stdout.
// Parsing is left to ParseDimensions so callers decide how to treat
// malformed output.
func ProbeDimensions(ctx context.Context, binary string, path string) (string, error) {
	out, err := run(ctx, binary, path, DimensionArgs(path)...)
	if err != nil {
		return "", fmt.Errorf("ffprobe dimensions: %w", err)
	}
	return string(out), nil
}

// ParseDimensions parses ffprobe csv output of exactly two comma-separated
// unsigned integers.
func ParseDimensions(output string) (int, int, error) {
	fields := strings.Split(strings.TrimSpace(output), ",")
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("ffprobe dimensions: expected width,height, got %q", strings.TrimSpace(output))
	}
	width, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe dimensions: width: %w", err)
	}
	height, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe dimensions: height: %w", err)
	}
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("ffprobe dimensions: zero size %dx%d", width, height)
	}
	return int(width), int(height), nil
}
