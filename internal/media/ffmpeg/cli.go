package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"phono/internal/media/ffprobe"
)

var commandContext = exec.CommandContext

// Option configures the CLI processor.
type Option func(*CLI)

// WithFFmpegBinary overrides the default ffmpeg binary name.
func WithFFmpegBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.ffmpeg = binary
		}
	}
}

// WithFFprobeBinary overrides the default ffprobe binary name.
func WithFFprobeBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.ffprobe = binary
		}
	}
}

// CLI shells out to ffmpeg/ffprobe for the derived-media operations.
type CLI struct {
	ffmpeg  string
	ffprobe string
}

// NewCLI constructs a CLI processor using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{ffmpeg: "ffmpeg", ffprobe: "ffprobe"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// ProbeDimensions returns the pixel size of an image file.
func (c *CLI) ProbeDimensions(ctx context.Context, imagePath string) (int, int, error) {
	result, err := ffprobe.Inspect(ctx, c.ffprobe, imagePath)
	if err != nil {
		return 0, 0, err
	}
	width, height, ok := result.Dimensions()
	if !ok {
		return 0, 0, fmt.Errorf("probe %s: no pixel dimensions reported", imagePath)
	}
	return width, height, nil
}

// ExtractAudioSegment copies at most the first seconds of src into dst.
func (c *CLI) ExtractAudioSegment(ctx context.Context, src, dst string, seconds int) error {
	if seconds <= 0 {
		return errors.New("extract segment: seconds must be positive")
	}
	return c.run(ctx, "-y", "-v", "error",
		"-i", src,
		"-t", strconv.Itoa(seconds),
		dst)
}

// RenderWaveform draws a waveform visualization of the audio at the given
// canvas size.
func (c *CLI) RenderWaveform(ctx context.Context, audioPath, dst string, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render waveform: invalid canvas %dx%d", width, height)
	}
	filter := fmt.Sprintf("showwavespic=s=%dx%d:colors=white", width, height)
	return c.run(ctx, "-y", "-v", "error",
		"-i", audioPath,
		"-filter_complex", filter,
		"-frames:v", "1",
		dst)
}

// OverlayImage composites overlay onto base at the given opacity, full
// canvas, no rescaling.
func (c *CLI) OverlayImage(ctx context.Context, basePath, overlayPath, dst string, opacity float64) error {
	if opacity <= 0 || opacity > 1 {
		return fmt.Errorf("overlay: opacity %v out of range", opacity)
	}
	filter := fmt.Sprintf("[1]format=rgba,colorchannelmixer=aa=%s[ov];[0][ov]overlay=0:0",
		strconv.FormatFloat(opacity, 'f', -1, 64))
	return c.run(ctx, "-y", "-v", "error",
		"-i", basePath,
		"-i", overlayPath,
		"-filter_complex", filter,
		dst)
}

// EncodeStillVideo muxes a looped still image with the audio track. The
// output stops with the audio and never exceeds maxSeconds.
func (c *CLI) EncodeStillVideo(ctx context.Context, imagePath, audioPath, dst string, maxSeconds int, audioBitrate string) error {
	if maxSeconds <= 0 {
		return errors.New("encode video: maxSeconds must be positive")
	}
	if strings.TrimSpace(audioBitrate) == "" {
		audioBitrate = "192k"
	}
	return c.run(ctx, "-y", "-v", "error",
		"-loop", "1",
		"-i", imagePath,
		"-i", audioPath,
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", audioBitrate,
		"-shortest",
		"-t", strconv.Itoa(maxSeconds),
		dst)
}

func (c *CLI) run(ctx context.Context, args ...string) error {
	cmd := commandContext(ctx, c.ffmpeg, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", c.ffmpeg, err, strings.TrimSpace(string(output)))
	}
	return nil
}
