package encoding

import (
	"math"
	"strconv"
	"strings"
)

const (
	defaultVideoCodec  = "libx264"
	baselineAudioCodec = "aac"
	baselineAudioRate  = "128k"
	hevcTag            = "hvc1"

	// Sources near 16:9 and larger than 1080p are scaled down to 1920 wide.
	wideAspectMin = 1.775
	wideAspectMax = 1.781
	maxWidth      = 1920
	maxHeight     = 1080
	resizeFilter  = "scale=1920:-2"
)

// Dimensions is the probed frame size of the first video stream.
type Dimensions struct {
	Width  int
	Height int
}

// AspectRatio returns width/height rounded to three decimals.
func (d Dimensions) AspectRatio() float64 {
	if d.Height == 0 {
		return 0
	}
	return math.Round(float64(d.Width)/float64(d.Height)*1000) / 1000
}

// ResizeFilter returns the scale filter for dims, or "" when the source should
// keep its size. A nil dims (probe unavailable) never resizes.
func ResizeFilter(dims *Dimensions) string {
	if dims == nil {
		return ""
	}
	ratio := dims.AspectRatio()
	if ratio < wideAspectMin || ratio > wideAspectMax {
		return ""
	}
	if dims.Width > maxWidth || dims.Height > maxHeight {
		return resizeFilter
	}
	return ""
}

// CodecChoice records which video codec a policy selected and why.
type CodecChoice struct {
	Codec  string
	Tag    string
	Reason string
}

// SelectVideoCodec applies the profile's codec rules.
func SelectVideoCodec(cfg VideoEncodingConfig) CodecChoice {
	switch cfg.Profile {
	case ProfileCompat:
		switch {
		case cfg.MobileSupport && cfg.Platform == PlatformApple:
			return CodecChoice{Codec: "hevc_videotoolbox", Tag: hevcTag, Reason: "mobile_support_apple"}
		case cfg.MobileSupport:
			return CodecChoice{Codec: "libx265", Tag: hevcTag, Reason: "mobile_support_other"}
		default:
			return CodecChoice{Codec: "libsvtav1", Reason: "no_mobile_support"}
		}
	case ProfileCustom:
		if codec := strings.TrimSpace(cfg.VideoCodec); codec != "" {
			return CodecChoice{Codec: codec, Reason: "configured"}
		}
		return CodecChoice{Codec: defaultVideoCodec, Reason: "custom_default"}
	default:
		return CodecChoice{Codec: defaultVideoCodec, Reason: "baseline"}
	}
}

// BuildVideoArgs renders the ffmpeg argument list (without the binary) for
// one encode. dims may be nil when probing failed.
func BuildVideoArgs(input, output string, cfg VideoEncodingConfig, dims *Dimensions) []string {
	choice := SelectVideoCodec(cfg)
	filter := ResizeFilter(dims)

	args := []string{"-i", input, "-c:v", choice.Codec}
	if choice.Tag != "" {
		args = append(args, "-tag:v", choice.Tag)
	}

	switch cfg.Profile {
	case ProfileCompat:
		args = appendCRF(args, cfg.CRF)
		args = append(args, "-c:a", baselineAudioCodec, "-b:a", baselineAudioRate)
		if filter != "" {
			args = append(args, "-vf", filter)
		}
	case ProfileCustom:
		args = appendCRF(args, cfg.CRF)
		args = appendIfSet(args, "-preset", cfg.Preset)
		args = appendIfSet(args, "-b:v", cfg.VideoBitrate)
		if res := strings.TrimSpace(cfg.Resolution); res != "" {
			args = append(args, "-s", res)
		} else if cfg.AutoResize && filter != "" {
			args = append(args, "-vf", filter)
		}
		args = appendIfSet(args, "-c:a", cfg.AudioCodec)
		args = appendIfSet(args, "-b:a", cfg.AudioBitrate)
		for _, extra := range cfg.ExtraArgs {
			key := strings.TrimSpace(extra.Key)
			if key == "" {
				continue
			}
			args = append(args, key)
			if extra.Value != "" {
				args = append(args, extra.Value)
			}
		}
	default:
		args = appendCRF(args, cfg.CRF)
		args = appendIfSet(args, "-preset", cfg.Preset)
		args = append(args, "-c:a", baselineAudioCodec, "-b:a", baselineAudioRate)
		if filter != "" {
			args = append(args, "-vf", filter)
		}
	}

	return append(args, "-y", output)
}

func appendCRF(args []string, crf *int) []string {
	if crf == nil {
		return args
	}
	return append(args, "-crf", strconv.Itoa(*crf))
}

func appendIfSet(args []string, flag, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return args
	}
	return append(args, flag, value)
}
