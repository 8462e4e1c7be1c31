package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSite(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSite() error {
	if c.Site.Title == "" {
		return errors.New("site.title must be set")
	}
	if c.Site.BaseURL != "" && !strings.HasPrefix(c.Site.BaseURL, "http://") && !strings.HasPrefix(c.Site.BaseURL, "https://") {
		return fmt.Errorf("site.base_url must be an absolute http(s) URL, got %q", c.Site.BaseURL)
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.ContentDir == "" {
		return errors.New("paths.content_dir must be set")
	}
	if c.Paths.TemplatesDir == "" {
		return errors.New("paths.templates_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.OutputDir == c.Paths.ContentDir {
		return errors.New("paths.output_dir must differ from paths.content_dir")
	}
	return nil
}

func (c *Config) validateMedia() error {
	if !c.Media.Enabled {
		return nil
	}
	if c.Media.WaveformSeconds > c.Media.VideoMaxSeconds {
		return fmt.Errorf("media.waveform_seconds (%d) must not exceed media.video_max_seconds (%d)",
			c.Media.WaveformSeconds, c.Media.VideoMaxSeconds)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
