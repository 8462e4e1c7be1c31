package config

const (
	defaultContentDir      = "content"
	defaultTemplatesDir    = "templates"
	defaultStaticDir       = "static"
	defaultOutputDir       = "public"
	defaultLogDir          = "~/.local/share/phono/logs"
	defaultCoverImage      = "cover.jpg"
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultWaveformSeconds = 50
	defaultVideoMaxSeconds = 600
	defaultAudioBitrate    = "192k"
	defaultCanvasWidth     = 1200
	defaultCanvasHeight    = 630
	defaultCachePath       = "~/.local/share/phono/media.db"
	defaultFeedMaxItems    = 20
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultDebounceMillis  = 500
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Site: Site{
			Title:      "phono",
			CoverImage: defaultCoverImage,
		},
		Paths: Paths{
			ContentDir:   defaultContentDir,
			TemplatesDir: defaultTemplatesDir,
			StaticDir:    defaultStaticDir,
			OutputDir:    defaultOutputDir,
			LogDir:       defaultLogDir,
		},
		Media: Media{
			Enabled:         true,
			FFmpegBinary:    defaultFFmpegBinary,
			FFprobeBinary:   defaultFFprobeBinary,
			WaveformSeconds: defaultWaveformSeconds,
			VideoMaxSeconds: defaultVideoMaxSeconds,
			AudioBitrate:    defaultAudioBitrate,
			CanvasWidth:     defaultCanvasWidth,
			CanvasHeight:    defaultCanvasHeight,
			CachePath:       defaultCachePath,
		},
		Feed: Feed{
			MaxItems: defaultFeedMaxItems,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Watch: Watch{
			DebounceMillis: defaultDebounceMillis,
		},
	}
}
