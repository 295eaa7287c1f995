package encoding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"mediapress/internal/fileutil"
	"mediapress/internal/logging"
	"mediapress/internal/services"
)

// ImageRequest describes one JPEG re-encode.
type ImageRequest struct {
	Input   string
	Output  string
	Quality float64
}

// PNGRequest describes one lossless PNG re-encode.
type PNGRequest struct {
	Input  string
	Output string
	// Preset is the optimization level, 0 (fastest) to 6 (smallest).
	Preset int
	// Force writes the re-encoded file even when it is larger than the original.
	Force bool
}

// ImageEncoder re-encodes still images in-process.
type ImageEncoder struct {
	logger *slog.Logger
}

// NewImageEncoder returns an ImageEncoder.
func NewImageEncoder(logger *slog.Logger) *ImageEncoder {
	return &ImageEncoder{logger: logging.NewComponentLogger(logger, "image")}
}

// JPEGQuality clamps q to [1,100] and rounds it to the encoder's integer scale.
func JPEGQuality(q float64) int {
	if math.IsNaN(q) {
		return 1
	}
	q = math.Max(1, math.Min(100, q))
	return int(math.Round(q))
}

// PNGCompressionLevel maps an optimization preset to a zlib level.
func PNGCompressionLevel(preset int) png.CompressionLevel {
	switch {
	case preset <= 0:
		return png.NoCompression
	case preset == 1:
		return png.BestSpeed
	case preset <= 3:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// EncodeJPEG decodes req.Input, flattens it onto an opaque white background,
// and writes it as JPEG at req.Quality.
func (e *ImageEncoder) EncodeJPEG(ctx context.Context, req ImageRequest) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	start := time.Now()
	img, err := openImage(req.Input)
	if err != nil {
		return Stats{}, err
	}

	quality := JPEGQuality(req.Quality)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flatten(img), imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return Stats{}, services.Wrap(services.ErrCodec, "image", "encode jpeg", filepath.Base(req.Input), err)
	}
	if err := writeOutput(req.Output, buf.Bytes()); err != nil {
		return Stats{}, err
	}

	stats, err := statFiles("image", req.Input, req.Output, time.Since(start))
	if err != nil {
		return Stats{}, err
	}
	logging.WithContext(ctx, e.logger).Debug("jpeg encoded",
		logging.Int("quality", quality),
		logging.Bytes("original", stats.OriginalSize),
		logging.Bytes("compressed", stats.CompressedSize),
	)
	return stats, nil
}

// OptimizePNG re-encodes req.Input losslessly at the requested preset. Without
// Force, the original bytes are copied when re-encoding would not shrink the
// file.
func (e *ImageEncoder) OptimizePNG(ctx context.Context, req PNGRequest) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	start := time.Now()
	logger := logging.WithContext(ctx, e.logger)

	original, err := os.Stat(req.Input)
	if err != nil {
		return Stats{}, inputError("image", req.Input, err)
	}
	img, err := openImage(req.Input)
	if err != nil {
		return Stats{}, err
	}

	level := PNGCompressionLevel(req.Preset)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(level)); err != nil {
		return Stats{}, services.Wrap(services.ErrCodec, "image", "encode png", filepath.Base(req.Input), err)
	}

	if !req.Force && int64(buf.Len()) >= original.Size() {
		logging.LogDecision(logger, "png decision",
			logging.Decision{Type: "png_output", Result: "keep_original", Reason: "reencode_not_smaller"},
			logging.Bytes("original", original.Size()),
			logging.Bytes("reencoded", int64(buf.Len())),
		)
		if err := fileutil.CopyFileAtomic(req.Input, req.Output); err != nil {
			return Stats{}, services.Wrap(services.ErrFileSystem, "image", "copy original", req.Output, err)
		}
	} else if err := writeOutput(req.Output, buf.Bytes()); err != nil {
		return Stats{}, err
	}

	return statFiles("image", req.Input, req.Output, time.Since(start))
}

func openImage(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, inputError("image", path, err)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, services.Wrap(services.ErrCodec, "image", "decode", filepath.Base(path), err)
	}
	return img, nil
}

// flatten composites images with transparency onto white so JPEG output has
// no alpha channel.
func flatten(img image.Image) image.Image {
	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return img
	}
	bounds := img.Bounds()
	bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// writeOutput writes data beside path and renames it into place so a failed
// write never leaves a truncated output that would later be skipped.
func writeOutput(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return services.Wrap(services.ErrFileSystem, "image", "write output", path, err)
	}
	return nil
}

func inputError(stage, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrFileSystem, stage, "stat input", fmt.Sprintf("%s not found", path), err)
	}
	return services.Wrap(services.ErrFileSystem, stage, "stat input", path, err)
}
