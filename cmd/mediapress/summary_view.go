package main

import (
	"mediapress/internal/pipeline"
	"mediapress/internal/services"
)

type summaryView struct {
	RunID       string     `json:"run_id"`
	Root        string     `json:"root"`
	OutputRoot  string     `json:"output_root"`
	Interrupted bool       `json:"interrupted"`
	ElapsedMS   int64      `json:"elapsed_ms"`
	Totals      totalsView `json:"totals"`
	Files       []fileView `json:"files"`
}

type totalsView struct {
	Files            int     `json:"files"`
	Encoded          int     `json:"encoded"`
	Skipped          int     `json:"skipped"`
	Unsupported      int     `json:"unsupported"`
	Failed           int     `json:"failed"`
	InputBytes       int64   `json:"input_bytes"`
	OutputBytes      int64   `json:"output_bytes"`
	ReductionPercent float64 `json:"reduction_percent"`
}

type fileView struct {
	Path             string  `json:"path"`
	Kind             string  `json:"kind"`
	Result           string  `json:"result"`
	Output           string  `json:"output,omitempty"`
	Reason           string  `json:"reason,omitempty"`
	OriginalBytes    int64   `json:"original_bytes,omitempty"`
	CompressedBytes  int64   `json:"compressed_bytes,omitempty"`
	ReductionPercent float64 `json:"reduction_percent,omitempty"`
	ElapsedMS        int64   `json:"elapsed_ms,omitempty"`
	ErrorKind        string  `json:"error_kind,omitempty"`
	Error            string  `json:"error,omitempty"`
}

func newSummaryView(summary pipeline.Summary) summaryView {
	files := make([]fileView, 0, len(summary.Files))
	for _, f := range summary.Files {
		view := fileView{
			Path:   f.RelPath,
			Kind:   f.Kind.String(),
			Result: string(f.Outcome),
			Output: f.Output,
			Reason: f.Reason,
		}
		if f.Outcome == pipeline.OutcomeEncoded {
			view.OriginalBytes = f.Stats.OriginalSize
			view.CompressedBytes = f.Stats.CompressedSize
			view.ReductionPercent = f.Stats.ReductionPercent
			view.ElapsedMS = f.Stats.Elapsed.Milliseconds()
		}
		if f.Err != nil {
			view.ErrorKind = services.Kind(f.Err)
			view.Error = f.Err.Error()
		}
		files = append(files, view)
	}
	stats := summary.Stats
	return summaryView{
		RunID:       summary.RunID,
		Root:        summary.Root,
		OutputRoot:  summary.OutputRoot,
		Interrupted: summary.Interrupted,
		ElapsedMS:   summary.Elapsed.Milliseconds(),
		Totals: totalsView{
			Files:            stats.Total,
			Encoded:          stats.Encoded,
			Skipped:          stats.Skipped,
			Unsupported:      stats.Unsupported,
			Failed:           stats.Failed,
			InputBytes:       stats.TotalInputBytes,
			OutputBytes:      stats.TotalOutputBytes,
			ReductionPercent: stats.ReductionPercent(),
		},
		Files: files,
	}
}
