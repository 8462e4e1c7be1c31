package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Site contains the channel-level identity emitted into pages and the feed.
type Site struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	BaseURL     string `toml:"base_url"`
	Author      string `toml:"author"`
	Email       string `toml:"email"`
	CoverImage  string `toml:"cover_image"`
}

// Paths contains directory configuration.
type Paths struct {
	ContentDir   string `toml:"content_dir"`
	TemplatesDir string `toml:"templates_dir"`
	StaticDir    string `toml:"static_dir"`
	OutputDir    string `toml:"output_dir"`
	LogDir       string `toml:"log_dir"`
}

// Media contains configuration for derived-media generation.
type Media struct {
	Enabled         bool   `toml:"enabled"`
	FFmpegBinary    string `toml:"ffmpeg_binary"`
	FFprobeBinary   string `toml:"ffprobe_binary"`
	WaveformSeconds int    `toml:"waveform_seconds"`
	VideoMaxSeconds int    `toml:"video_max_seconds"`
	AudioBitrate    string `toml:"audio_bitrate"`
	CanvasWidth     int    `toml:"canvas_width"`
	CanvasHeight    int    `toml:"canvas_height"`
	CachePath       string `toml:"cache_path"`
}

// Feed contains configuration for the RSS feed.
type Feed struct {
	MaxItems int `toml:"max_items"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Watch contains configuration for the continuous rebuild mode.
type Watch struct {
	DebounceMillis int `toml:"debounce_millis"`
}

// Config encapsulates all configuration values for phono.
//
// Configuration sections by subsystem:
//   - Site: title, description, canonical URL, and author identity
//   - Paths: content, template, static, output, and log directories
//   - Media: ffmpeg/ffprobe binaries and derived-media knobs
//   - Feed: RSS item limit
//   - Logging: log format and level
//   - Watch: rebuild debounce for the watch daemon
type Config struct {
	Site    Site    `toml:"site"`
	Paths   Paths   `toml:"paths"`
	Media   Media   `toml:"media"`
	Feed    Feed    `toml:"feed"`
	Logging Logging `toml:"logging"`
	Watch   Watch   `toml:"watch"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/phono/config.toml")
}

// ExpandPath resolves a leading ~ against the current user's home directory.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// Load locates, parses, normalizes, and validates a configuration file. The
// returned config has all path fields expanded. The bool reports whether a
// config file was actually found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs("phono.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// WriteSample writes the sample configuration to the given path, creating
// parent directories. It refuses to overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates the output and log directories if missing. The
// content and template directories are inputs; they are checked at build time.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
