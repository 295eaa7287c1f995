package pipeline

import (
	"time"

	"mediapress/internal/encoding"
	"mediapress/internal/media"
)

// Outcome is what happened to one input file.
type Outcome string

const (
	OutcomeEncoded     Outcome = "encoded"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeUnsupported Outcome = "unsupported"
	OutcomeFailed      Outcome = "failed"
)

// FileResult records the handling of one input file.
type FileResult struct {
	RelPath string
	Kind    media.Kind
	Outcome Outcome
	Output  string
	// Reason explains skips.
	Reason string
	Stats  encoding.Stats
	Err    error
}

// RunStats tracks aggregate counters and byte totals across a batch.
type RunStats struct {
	Total            int
	Encoded          int
	Skipped          int
	Unsupported      int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs
// of encoded files. Positive means outputs are smaller.
func (s RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// ReductionPercent is the aggregate size reduction of encoded files.
func (s RunStats) ReductionPercent() float64 {
	return encoding.ReductionPercent(s.TotalInputBytes, s.TotalOutputBytes)
}

// Summary is the result of one batch.
type Summary struct {
	RunID       string
	Root        string
	OutputRoot  string
	Files       []FileResult
	Stats       RunStats
	Elapsed     time.Duration
	Interrupted bool
}

func (s *Summary) record(result FileResult) {
	s.Files = append(s.Files, result)
	s.Stats.Total++
	switch result.Outcome {
	case OutcomeEncoded:
		s.Stats.Encoded++
		s.Stats.TotalInputBytes += result.Stats.OriginalSize
		s.Stats.TotalOutputBytes += result.Stats.CompressedSize
	case OutcomeSkipped:
		s.Stats.Skipped++
	case OutcomeUnsupported:
		s.Stats.Unsupported++
	case OutcomeFailed:
		s.Stats.Failed++
	}
}

// Failures returns the failed file results in processing order.
func (s Summary) Failures() []FileResult {
	var out []FileResult
	for _, f := range s.Files {
		if f.Outcome == OutcomeFailed {
			out = append(out, f)
		}
	}
	return out
}
