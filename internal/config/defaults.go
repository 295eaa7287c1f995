package config

const (
	defaultOutputDir     = "compress"
	defaultImageQuality  = 70.0
	defaultPNGPreset     = 2
	defaultPNGForce      = true
	defaultVideoProfile  = ProfileBaseline
	defaultVideoCRF      = 23
	defaultVideoPreset   = "medium"
	defaultVideoPlatform = PlatformAuto
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Video profile names accepted in [video].profile.
const (
	ProfileBaseline = "baseline"
	ProfileCompat   = "compat"
	ProfileCustom   = "custom"
)

// Platform names accepted in [video].platform.
const (
	PlatformAuto  = "auto"
	PlatformApple = "apple"
	PlatformOther = "other"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Image: Image{
			Quality:   defaultImageQuality,
			PNGPreset: defaultPNGPreset,
			PNGForce:  defaultPNGForce,
		},
		Video: Video{
			Profile:    defaultVideoProfile,
			CRF:        defaultVideoCRF,
			Preset:     defaultVideoPreset,
			Platform:   defaultVideoPlatform,
			AutoResize: true,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
