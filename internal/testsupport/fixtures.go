package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// gradient returns a deterministic w×h image with partial transparency in the
// bottom half so PNG fixtures exercise the alpha channel.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			alpha := uint8(255)
			if y >= h/2 {
				alpha = 128
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 90, A: alpha})
		}
	}
	return img
}

// WritePNG writes an uncompressed PNG fixture of the given size.
func WritePNG(t testing.TB, path string, w, h int) {
	t.Helper()
	f := create(t, path)
	defer f.Close()
	enc := png.Encoder{CompressionLevel: png.NoCompression}
	if err := enc.Encode(f, gradient(w, h)); err != nil {
		t.Fatalf("encode png %s: %v", path, err)
	}
}

// WriteJPEG writes a maximum-quality JPEG fixture of the given size.
func WriteJPEG(t testing.TB, path string, w, h int) {
	t.Helper()
	f := create(t, path)
	defer f.Close()
	if err := jpeg.Encode(f, gradient(w, h), &jpeg.Options{Quality: 100}); err != nil {
		t.Fatalf("encode jpeg %s: %v", path, err)
	}
}

// WriteFile writes size bytes of filler to path, creating parents. A size of
// zero or less writes one byte so the file is never empty.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()
	f := create(t, path)
	defer f.Close()
	if _, err := f.Write(bytes.Repeat([]byte{'x'}, int(max(size, 1)))); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func create(t testing.TB, path string) *os.File {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	return f
}
