package encoding

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mediapress/internal/logging"
	"mediapress/internal/media"
	"mediapress/internal/media/ffprobe"
	"mediapress/internal/services"
)

// VideoRequest describes one video encode.
type VideoRequest struct {
	Input  string
	Output string
	Config VideoEncodingConfig
}

// VideoEncoder encodes videos through a Toolchain.
type VideoEncoder struct {
	tools  Toolchain
	logger *slog.Logger
}

// NewVideoEncoder returns an encoder using tools for every subprocess call.
func NewVideoEncoder(tools Toolchain, logger *slog.Logger) *VideoEncoder {
	return &VideoEncoder{tools: tools, logger: logging.NewComponentLogger(logger, "video")}
}

// Encode validates the input, confirms ffmpeg runs, probes the source size,
// and encodes req.Input to req.Output. The encoder check happens before any
// directory is created or probe is run.
func (e *VideoEncoder) Encode(ctx context.Context, req VideoRequest) (Stats, error) {
	logger := logging.WithContext(ctx, e.logger)

	info, err := os.Stat(req.Input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Stats{}, services.Wrap(services.ErrFileSystem, "video", "stat input", fmt.Sprintf("%s not found", req.Input), err)
		}
		return Stats{}, services.Wrap(services.ErrFileSystem, "video", "stat input", req.Input, err)
	}
	if !info.Mode().IsRegular() {
		return Stats{}, services.Wrap(services.ErrFileSystem, "video", "stat input", req.Input+" is not a regular file", nil)
	}
	if !media.IsVideoExtension(media.Ext(req.Input)) {
		return Stats{}, services.Wrap(services.ErrUnsupportedFormat, "video", "check extension", filepath.Base(req.Input), nil)
	}

	if err := e.tools.Version(ctx); err != nil {
		return Stats{}, services.Wrap(services.ErrEncoderUnavailable, "video", "ffmpeg -version", "ffmpeg is not installed or not executable", err)
	}

	if err := os.MkdirAll(filepath.Dir(req.Output), 0o755); err != nil {
		return Stats{}, services.Wrap(services.ErrFileSystem, "video", "create output directory", filepath.Dir(req.Output), err)
	}

	dims := e.probe(ctx, logger, req.Input)
	if filter := ResizeFilter(dims); filter != "" {
		logging.LogDecision(logger, "resize decision",
			logging.Decision{Type: "video_resize", Result: "downscale", Reason: "wide_source_above_1080p"},
			logging.String("filter", filter),
			logging.Int("width", dims.Width),
			logging.Int("height", dims.Height),
		)
	}

	choice := SelectVideoCodec(req.Config)
	logging.LogDecision(logger, "codec decision",
		logging.Decision{Type: "video_codec", Result: choice.Codec, Reason: choice.Reason, Options: string(req.Config.Profile)},
		logging.Bool("mobile_support", req.Config.MobileSupport),
		logging.String("platform", string(req.Config.Platform)),
	)

	args := BuildVideoArgs(req.Input, req.Output, req.Config, dims)
	logger.Debug("running ffmpeg", logging.String("args", strings.Join(args, " ")))

	start := time.Now()
	if err := e.tools.Encode(ctx, args); err != nil {
		// A partial output would be skipped as done on the next run.
		if rmErr := os.Remove(req.Output); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logger.Debug("remove partial output failed", logging.Error(rmErr))
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return Stats{}, services.Wrap(services.ErrEncodeFailed, "video", "ffmpeg", fmt.Sprintf("exit code %d", exitErr.Code), err)
		}
		return Stats{}, services.Wrap(services.ErrEncodeFailed, "video", "ffmpeg", "encoder did not complete", err)
	}
	return statFiles("video", req.Input, req.Output, time.Since(start))
}

// probe returns nil when the size cannot be determined; encoding proceeds
// without a resize filter.
func (e *VideoEncoder) probe(ctx context.Context, logger *slog.Logger, input string) *Dimensions {
	out, err := e.tools.Probe(ctx, input)
	if err == nil {
		var w, h int
		w, h, err = ffprobe.ParseDimensions(out)
		if err == nil {
			return &Dimensions{Width: w, Height: h}
		}
	}
	wrapped := services.Wrap(services.ErrProbe, "video", "ffprobe dimensions", filepath.Base(input), err)
	logging.WarnWithContext(logger, "probe failed; encoding without resize", "probe_failed",
		logging.Error(wrapped),
		logging.String(logging.FieldErrorHint, "check that ffprobe is installed and the file has a video stream"),
		logging.String(logging.FieldImpact, "large sources are not downscaled"),
	)
	return nil
}
