package encoding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"mediapress/internal/media/ffprobe"
)

// Toolchain is the subprocess boundary for video work.
type Toolchain interface {
	// Version checks that the encoder can be executed.
	Version(ctx context.Context) error
	// Probe returns the raw "width,height" output for the first video stream.
	Probe(ctx context.Context, input string) (string, error)
	// Encode runs the encoder with args and waits for it to exit.
	Encode(ctx context.Context, args []string) error
}

// ExitError reports a non-zero encoder exit.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return fmt.Sprintf("exit status %d: %s", e.Code, e.Stderr)
}

// ExecToolchain runs ffmpeg and ffprobe as child processes.
type ExecToolchain struct {
	FFmpeg  string
	FFprobe string
}

// NewExecToolchain returns a toolchain using the given binaries, defaulting to
// ffmpeg and ffprobe on PATH.
func NewExecToolchain(ffmpegBinary, ffprobeBinary string) *ExecToolchain {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(ffprobeBinary) == "" {
		ffprobeBinary = "ffprobe"
	}
	return &ExecToolchain{FFmpeg: ffmpegBinary, FFprobe: ffprobeBinary}
}

// Version runs "ffmpeg -version" and discards its output.
func (t *ExecToolchain) Version(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, t.FFmpeg, "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s -version: %w", t.FFmpeg, err)
	}
	return nil
}

// Probe runs the dimension probe through ffprobe.
func (t *ExecToolchain) Probe(ctx context.Context, input string) (string, error) {
	return ffprobe.ProbeDimensions(ctx, t.FFprobe, input)
}

const stderrTailLimit = 2048

// Encode runs ffmpeg with args. Non-zero exits surface as *ExitError carrying
// the tail of stderr.
func (t *ExecToolchain) Encode(ctx context.Context, args []string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.FFmpeg, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), Stderr: tail(stderr.String(), stderrTailLimit)}
	}
	return err
}

func tail(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return "..." + s[len(s)-limit:]
}
