package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Info is the subset of "ffprobe -show_format -show_streams" output used to
// preview a video.
type Info struct {
	Streams []Stream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Stream is one container stream.
type Stream struct {
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// VideoSize returns the dimensions of the first video stream, or zeros when
// there is none.
func (i Info) VideoSize() (int, int) {
	for _, s := range i.Streams {
		if strings.EqualFold(s.CodecType, "video") {
			return s.Width, s.Height
		}
	}
	return 0, 0
}

// AudioStreamCount returns the number of audio streams.
func (i Info) AudioStreamCount() int {
	n := 0
	for _, s := range i.Streams {
		if strings.EqualFold(s.CodecType, "audio") {
			n++
		}
	}
	return n
}

// DurationSeconds returns the container duration, or 0 when ffprobe did not
// report a usable one.
func (i Info) DurationSeconds() float64 {
	d, err := strconv.ParseFloat(strings.TrimSpace(i.Format.Duration), 64)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Inspect runs ffprobe with JSON output against path.
func Inspect(ctx context.Context, binary, path string) (Info, error) {
	out, err := run(ctx, binary, path, "-v", "error", "-show_format", "-show_streams", "-of", "json", path)
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe inspect: %w", err)
	}
	var info Info
	if err := json.Unmarshal(out, &info); err != nil {
		return Info{}, fmt.Errorf("ffprobe inspect: parse: %w", err)
	}
	return info, nil
}

// run executes ffprobe and returns stdout. Stderr is folded into the error.
func run(ctx context.Context, binary, path string, args ...string) ([]byte, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("empty path")
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
