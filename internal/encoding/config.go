package encoding

import (
	"strings"

	"mediapress/internal/config"
)

// Profile selects the video codec policy.
type Profile string

const (
	ProfileBaseline Profile = config.ProfileBaseline
	ProfileCompat   Profile = config.ProfileCompat
	ProfileCustom   Profile = config.ProfileCustom
)

// Platform is the target playback platform used by the compat profile.
type Platform string

const (
	PlatformApple Platform = config.PlatformApple
	PlatformOther Platform = config.PlatformOther
)

// ExtraArg is an encoder flag appended verbatim after the generated ones.
type ExtraArg struct {
	Key   string
	Value string
}

// VideoEncodingConfig is the complete video policy for one run.
type VideoEncodingConfig struct {
	Profile Profile
	// CRF is nil when rate control is left to the codec.
	CRF           *int
	Preset        string
	MobileSupport bool
	Platform      Platform

	VideoCodec   string
	VideoBitrate string
	Resolution   string
	AudioCodec   string
	AudioBitrate string
	AutoResize   bool
	ExtraArgs    []ExtraArg
}

// NewVideoConfig converts finalized configuration into an encoding policy.
// Platform must already be resolved; "auto" is treated as PlatformOther.
func NewVideoConfig(video config.Video) VideoEncodingConfig {
	platform := PlatformOther
	if strings.EqualFold(video.Platform, config.PlatformApple) {
		platform = PlatformApple
	}
	extras := make([]ExtraArg, 0, len(video.ExtraArgs))
	for _, arg := range video.ExtraArgs {
		extras = append(extras, ExtraArg{Key: arg.Key, Value: arg.Value})
	}
	var crf *int
	if video.CRF >= 0 {
		crf = &video.CRF
	}
	return VideoEncodingConfig{
		Profile:       Profile(video.Profile),
		CRF:           crf,
		Preset:        video.Preset,
		MobileSupport: video.MobileSupport,
		Platform:      platform,
		VideoCodec:    video.VideoCodec,
		VideoBitrate:  video.VideoBitrate,
		Resolution:    video.Resolution,
		AudioCodec:    video.AudioCodec,
		AudioBitrate:  video.AudioBitrate,
		AutoResize:    video.AutoResize,
		ExtraArgs:     extras,
	}
}
