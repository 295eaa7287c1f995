package media

import (
	"path/filepath"
	"strings"
)

// Kind groups input files by how they are compressed.
type Kind int

const (
	Unsupported Kind = iota
	RGBImage
	RGBAImage
	Video
)

var kindNames = map[Kind]string{
	Unsupported: "unsupported",
	RGBImage:    "rgb_image",
	RGBAImage:   "rgba_image",
	Video:       "video",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unsupported"
}

// TargetExtension returns the extension, without a dot, written for outputs of
// this kind. Unsupported files have no target.
func (k Kind) TargetExtension() string {
	switch k {
	case RGBImage:
		return "jpg"
	case RGBAImage:
		return "png"
	case Video:
		return "mp4"
	default:
		return ""
	}
}

// Supported reports whether files of this kind are compressed.
func (k Kind) Supported() bool {
	return k != Unsupported
}

// VideoExtensions lists the container extensions handled as video.
var VideoExtensions = []string{"mp4", "mov", "avi", "mkv", "webm", "wmv", "flv"}

var extensionKinds = func() map[string]Kind {
	m := map[string]Kind{
		"jpg":  RGBImage,
		"jpeg": RGBImage,
		"png":  RGBAImage,
	}
	for _, ext := range VideoExtensions {
		m[ext] = Video
	}
	return m
}()

// NormalizeExtension lower-cases ext and strips a leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// Ext returns the normalized extension of path. A dotfile such as ".mp4"
// has no stem and therefore no extension.
func Ext(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return NormalizeExtension(ext)
}

// Classify maps a file extension to its Kind. Matching is case-insensitive and
// accepts the extension with or without its leading dot. Anything unknown,
// including the empty extension, is Unsupported.
func Classify(ext string) Kind {
	if kind, ok := extensionKinds[NormalizeExtension(ext)]; ok {
		return kind
	}
	return Unsupported
}

// IsVideoExtension reports whether ext names a video container.
func IsVideoExtension(ext string) bool {
	return Classify(ext) == Video
}
