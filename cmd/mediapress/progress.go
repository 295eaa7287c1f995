package main

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"mediapress/internal/pipeline"
)

// progressReporter draws a transient bar on an interactive stderr. It is a
// no-op when stderr is redirected or JSON output was requested.
type progressReporter struct {
	bar *progressbar.ProgressBar
}

func newProgressReporter(w io.Writer, total int, enabled bool) *progressReporter {
	if !enabled || total == 0 || !shouldColorize(w) {
		return &progressReporter{}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("compressing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	return &progressReporter{bar: bar}
}

func (p *progressReporter) update(ev pipeline.Progress) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(ev.File)
	_ = p.bar.Set(ev.Done)
}

func (p *progressReporter) finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
