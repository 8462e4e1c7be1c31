package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSite()
	c.normalizeMedia()
	c.normalizeFeed()
	c.normalizeLogging()
	c.normalizeWatch()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ContentDir, err = expandPath(c.Paths.ContentDir); err != nil {
		return fmt.Errorf("paths.content_dir: %w", err)
	}
	if c.Paths.TemplatesDir, err = expandPath(c.Paths.TemplatesDir); err != nil {
		return fmt.Errorf("paths.templates_dir: %w", err)
	}
	if c.Paths.StaticDir, err = expandPath(c.Paths.StaticDir); err != nil {
		return fmt.Errorf("paths.static_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSite() {
	c.Site.Title = strings.TrimSpace(c.Site.Title)
	c.Site.Description = strings.TrimSpace(c.Site.Description)
	c.Site.Author = strings.TrimSpace(c.Site.Author)
	c.Site.Email = strings.TrimSpace(c.Site.Email)
	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
	c.Site.CoverImage = strings.TrimSpace(c.Site.CoverImage)
	if c.Site.CoverImage == "" {
		c.Site.CoverImage = defaultCoverImage
	}
}

func (c *Config) normalizeMedia() {
	if strings.TrimSpace(c.Media.FFmpegBinary) == "" {
		c.Media.FFmpegBinary = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Media.FFprobeBinary) == "" {
		c.Media.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Media.WaveformSeconds <= 0 {
		c.Media.WaveformSeconds = defaultWaveformSeconds
	}
	if c.Media.VideoMaxSeconds <= 0 {
		c.Media.VideoMaxSeconds = defaultVideoMaxSeconds
	}
	if strings.TrimSpace(c.Media.AudioBitrate) == "" {
		c.Media.AudioBitrate = defaultAudioBitrate
	}
	if c.Media.CanvasWidth <= 0 {
		c.Media.CanvasWidth = defaultCanvasWidth
	}
	if c.Media.CanvasHeight <= 0 {
		c.Media.CanvasHeight = defaultCanvasHeight
	}
	if strings.TrimSpace(c.Media.CachePath) == "" {
		c.Media.CachePath = defaultCachePath
	}
	if expanded, err := expandPath(c.Media.CachePath); err == nil {
		c.Media.CachePath = expanded
	}
}

func (c *Config) normalizeFeed() {
	if c.Feed.MaxItems <= 0 {
		c.Feed.MaxItems = defaultFeedMaxItems
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeWatch() {
	if c.Watch.DebounceMillis <= 0 {
		c.Watch.DebounceMillis = defaultDebounceMillis
	}
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Clean(trimmed), nil
}
