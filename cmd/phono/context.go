package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"phono/internal/config"
	"phono/internal/logging"
	"phono/internal/media/derive"
	"phono/internal/media/ffmpeg"
	"phono/internal/mediacache"
	"phono/internal/site"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

// newBuilder assembles the full build pipeline. The derived-media generator
// is omitted when media generation is disabled; the ledger store is optional
// and a failure to open it degrades to building without one.
func (c *commandContext) newBuilder() (*site.Builder, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, nil, err
	}

	var gen *derive.Generator
	if cfg.Media.Enabled {
		proc := ffmpeg.NewCLI(
			ffmpeg.WithFFmpegBinary(cfg.Media.FFmpegBinary),
			ffmpeg.WithFFprobeBinary(cfg.Media.FFprobeBinary),
		)

		var store *mediacache.Store
		if cfg.Media.CachePath != "" {
			store, err = mediacache.Open(cfg.Media.CachePath)
			if err != nil {
				logger.Warn("open media ledger", slog.Any("error", err))
			}
		}

		gen = derive.New(proc, store, logger, derive.Options{
			WaveformSeconds: cfg.Media.WaveformSeconds,
			VideoMaxSeconds: cfg.Media.VideoMaxSeconds,
			AudioBitrate:    cfg.Media.AudioBitrate,
			CanvasWidth:     cfg.Media.CanvasWidth,
			CanvasHeight:    cfg.Media.CanvasHeight,
			DefaultCover:    cfg.Site.CoverImage,
		})
	}

	return site.NewBuilder(cfg, logger, gen), logger, nil
}

func (c *commandContext) openStore() (*mediacache.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Media.CachePath == "" {
		return nil, fmt.Errorf("media cache disabled: no cache_path configured")
	}
	return mediacache.Open(cfg.Media.CachePath)
}
