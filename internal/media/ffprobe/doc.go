// Package ffprobe wraps the two ffprobe invocations mediapress needs: a full
// JSON inspection used by the classify preview, and a minimal csv probe of the
// first video stream's width and height used by the encoding policy.
package ffprobe
