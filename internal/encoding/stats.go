package encoding

import (
	"os"
	"time"

	"mediapress/internal/services"
)

// Stats describes the outcome of one successful encode.
type Stats struct {
	OriginalSize     int64
	CompressedSize   int64
	ReductionPercent float64
	Elapsed          time.Duration
}

// ReductionPercent returns 100*(1-compressed/original). An empty original
// yields 0.
func ReductionPercent(original, compressed int64) float64 {
	if original <= 0 {
		return 0
	}
	return 100 * (1 - float64(compressed)/float64(original))
}

// NewStats builds Stats from raw sizes.
func NewStats(original, compressed int64, elapsed time.Duration) Stats {
	return Stats{
		OriginalSize:     original,
		CompressedSize:   compressed,
		ReductionPercent: ReductionPercent(original, compressed),
		Elapsed:          elapsed,
	}
}

func statFiles(stage, input, output string, elapsed time.Duration) (Stats, error) {
	in, err := os.Stat(input)
	if err != nil {
		return Stats{}, services.Wrap(services.ErrFileSystem, stage, "stat input", input, err)
	}
	out, err := os.Stat(output)
	if err != nil {
		return Stats{}, services.Wrap(services.ErrFileSystem, stage, "stat output", output, err)
	}
	return NewStats(in.Size(), out.Size(), elapsed), nil
}
