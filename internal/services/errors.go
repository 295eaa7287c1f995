package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPath               = errors.New("path error")
	ErrFileSystem         = errors.New("filesystem error")
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrEncoderUnavailable = errors.New("encoder unavailable")
	ErrProbe              = errors.New("probe error")
	ErrEncodeFailed       = errors.New("encode failed")
	ErrCodec              = errors.New("codec error")
	ErrConfiguration      = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFileSystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short label for the marker carried by err, suitable for
// summary tables and structured log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPath):
		return "path"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrEncoderUnavailable):
		return "encoder_unavailable"
	case errors.Is(err, ErrProbe):
		return "probe"
	case errors.Is(err, ErrEncodeFailed):
		return "encode_failed"
	case errors.Is(err, ErrCodec):
		return "codec"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return "filesystem"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
