package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// versionTimeout bounds the "-version" smoke test so a wedged binary cannot
// stall startup.
const versionTimeout = 10 * time.Second

// Requirement is an external binary mediapress shells out to.
type Requirement struct {
	Name    string
	Command string
	// Optional binaries degrade a feature instead of blocking the batch.
	Optional bool
}

// Status reports whether a requirement can run.
type Status struct {
	Requirement
	// Resolved is the absolute path found on PATH.
	Resolved  string
	Available bool
	Detail    string
}

// VideoRequirements lists the binaries needed to compress video. ffprobe only
// feeds the resize decision, so it is optional.
func VideoRequirements(ffmpegBinary, ffprobeBinary string) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpegBinary},
		{Name: "FFprobe", Command: ffprobeBinary, Optional: true},
	}
}

// Check resolves each requirement on PATH and runs "<binary> -version".
func Check(ctx context.Context, reqs []Requirement) []Status {
	out := make([]Status, 0, len(reqs))
	for _, req := range reqs {
		req.Command = strings.TrimSpace(req.Command)
		out = append(out, check(ctx, req))
	}
	return out
}

func check(ctx context.Context, req Requirement) Status {
	status := Status{Requirement: req}
	if req.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := exec.LookPath(req.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		return status
	}
	status.Resolved = resolved

	checkCtx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	if err := exec.CommandContext(checkCtx, resolved, "-version").Run(); err != nil {
		status.Detail = fmt.Sprintf("%s -version failed: %v", resolved, err)
		return status
	}
	status.Available = true
	return status
}
