package derive

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"phono/internal/logging"
	"phono/internal/mediacache"
	"phono/internal/post"
)

// waveformOpacity is the blend applied when compositing the waveform over
// the cover image.
const waveformOpacity = 0.5

// Processor is the injected media capability. Implementations shell out to
// an external tool; any call may fail and the generator degrades per entry.
type Processor interface {
	ProbeDimensions(ctx context.Context, imagePath string) (width, height int, err error)
	ExtractAudioSegment(ctx context.Context, src, dst string, seconds int) error
	RenderWaveform(ctx context.Context, audioPath, dst string, width, height int) error
	OverlayImage(ctx context.Context, basePath, overlayPath, dst string, opacity float64) error
	EncodeStillVideo(ctx context.Context, imagePath, audioPath, dst string, maxSeconds int, audioBitrate string) error
}

// Options carries the tunables for derived-media generation.
type Options struct {
	WaveformSeconds int
	VideoMaxSeconds int
	AudioBitrate    string
	CanvasWidth     int
	CanvasHeight    int
	// DefaultCover is the content-relative fallback cover image used when an
	// entry specifies none.
	DefaultCover string
}

// Generator produces waveform images and preview videos for music entries.
type Generator struct {
	proc   Processor
	store  *mediacache.Store
	logger *slog.Logger
	opts   Options
}

// New constructs a Generator. store may be nil to skip ledger updates.
func New(proc Processor, store *mediacache.Store, logger *slog.Logger, opts Options) *Generator {
	return &Generator{
		proc:   proc,
		store:  store,
		logger: logging.WithComponent(logger, "derive"),
		opts:   opts,
	}
}

// Process generates derived media for one entry, mutating VideoSource and
// WaveformImage in place. Asset paths on the entry are resolved against
// baseDir and artifacts are written next to the audio source. The reference
// fields are set only when the artifact demonstrably exists on disk
// afterwards; every failure is logged and swallowed so the build continues.
func (g *Generator) Process(ctx context.Context, entry *post.Entry, baseDir string) {
	if !entry.IsMusic() {
		return
	}
	log := g.logger.With(slog.String(logging.FieldSlug, entry.Slug))

	audioRel := entry.MusicSource
	audioAbs := filepath.Join(baseDir, audioRel)
	audioInfo, err := os.Stat(audioAbs)
	if err != nil {
		log.Warn("audio source missing; skipping derived media",
			slog.String("path", audioAbs), slog.Any("error", err))
		g.record(ctx, entry, audioRel, time.Time{}, mediacache.StatusFailed, "audio source missing")
		return
	}

	coverRel := entry.CoverImage
	if coverRel == "" {
		coverRel = g.opts.DefaultCover
	}
	coverAbs := filepath.Join(baseDir, coverRel)

	stemRel := strings.TrimSuffix(audioRel, filepath.Ext(audioRel))
	waveformRel := stemRel + "-waveform.jpg"
	videoRel := stemRel + ".mp4"

	var failures []string

	if err := g.generateWaveform(ctx, audioAbs, filepath.Join(baseDir, waveformRel), coverAbs); err != nil {
		log.Warn("waveform generation failed; continuing without it", slog.Any("error", err))
		failures = append(failures, fmt.Sprintf("waveform: %v", err))
	} else {
		entry.WaveformImage = filepath.ToSlash(waveformRel)
	}

	stillAbs := coverAbs
	if entry.WaveformImage != "" {
		stillAbs = filepath.Join(baseDir, waveformRel)
	}

	skipped, err := g.generateVideo(ctx, audioAbs, filepath.Join(baseDir, videoRel), stillAbs, log)
	switch {
	case err != nil:
		log.Warn("video generation failed; continuing without it", slog.Any("error", err))
		failures = append(failures, fmt.Sprintf("video: %v", err))
	default:
		entry.VideoSource = filepath.ToSlash(videoRel)
	}

	status := mediacache.StatusGenerated
	switch {
	case len(failures) > 0:
		status = mediacache.StatusFailed
	case skipped:
		status = mediacache.StatusSkipped
	}
	g.record(ctx, entry, audioRel, audioInfo.ModTime(), status, strings.Join(failures, "; "))
}

// generateWaveform renders a waveform of the first WaveformSeconds of audio
// and composites it over the cover image at dst. Transient files live in a
// temp directory removed on every path.
func (g *Generator) generateWaveform(ctx context.Context, audioAbs, dst, coverAbs string) error {
	width, height := g.opts.CanvasWidth, g.opts.CanvasHeight
	if w, h, err := g.proc.ProbeDimensions(ctx, coverAbs); err == nil && w > 0 && h > 0 {
		width, height = w, h
	} else if err != nil {
		g.logger.Debug("cover probe failed; using default canvas",
			slog.String("cover", coverAbs), slog.Any("error", err))
	}

	tmpDir, err := os.MkdirTemp("", "phono-waveform-")
	if err != nil {
		return fmt.Errorf("create transient directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	segment := filepath.Join(tmpDir, "segment"+filepath.Ext(audioAbs))
	if err := g.proc.ExtractAudioSegment(ctx, audioAbs, segment, g.opts.WaveformSeconds); err != nil {
		return fmt.Errorf("extract segment: %w", err)
	}

	wave := filepath.Join(tmpDir, "waveform.png")
	if err := g.proc.RenderWaveform(ctx, segment, wave, width, height); err != nil {
		return fmt.Errorf("render waveform: %w", err)
	}

	if err := g.proc.OverlayImage(ctx, coverAbs, wave, dst, waveformOpacity); err != nil {
		return fmt.Errorf("composite over cover: %w", err)
	}

	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("waveform artifact missing after composite: %w", err)
	}
	return nil
}

// generateVideo encodes the looped still plus audio at dst unless an output
// newer than the audio already exists. The up-to-date skip is the component's
// cost-avoidance guarantee: encodes are expensive, mtime checks are not.
func (g *Generator) generateVideo(ctx context.Context, audioAbs, dst, stillAbs string, log *slog.Logger) (skipped bool, err error) {
	if outInfo, statErr := os.Stat(dst); statErr == nil {
		if audioInfo, audioErr := os.Stat(audioAbs); audioErr == nil && outInfo.ModTime().After(audioInfo.ModTime()) {
			log.Info("preview video up to date", slog.String("path", dst))
			return true, nil
		}
	}

	if err := g.proc.EncodeStillVideo(ctx, stillAbs, audioAbs, dst, g.opts.VideoMaxSeconds, g.opts.AudioBitrate); err != nil {
		return false, fmt.Errorf("encode video: %w", err)
	}

	if _, err := os.Stat(dst); err != nil {
		return false, fmt.Errorf("video artifact missing after encode: %w", err)
	}
	log.Info("preview video generated", slog.String("path", dst))
	return false, nil
}

func (g *Generator) record(ctx context.Context, entry *post.Entry, audioRel string, audioMTime time.Time, status mediacache.Status, message string) {
	if g.store == nil {
		return
	}
	record := mediacache.Record{
		Slug:         entry.Slug,
		AudioPath:    audioRel,
		AudioMTime:   audioMTime,
		WaveformPath: entry.WaveformImage,
		VideoPath:    entry.VideoSource,
		Status:       status,
		Message:      message,
	}
	if err := g.store.Upsert(ctx, record); err != nil {
		g.logger.Warn("record media outcome", slog.String(logging.FieldSlug, entry.Slug), slog.Any("error", err))
	}
}
