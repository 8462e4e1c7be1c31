package derive

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"phono/internal/post"
	"phono/internal/testsupport"
)

type fakeProcessor struct {
	probeWidth  int
	probeHeight int
	probeErr    error
	extractErr  error
	renderErr   error
	overlayErr  error
	encodeErr   error

	renderWidth  int
	renderHeight int
	encodeStill  string
	encodeCalls  int
	extractCalls int
}

func (f *fakeProcessor) ProbeDimensions(_ context.Context, _ string) (int, int, error) {
	if f.probeErr != nil {
		return 0, 0, f.probeErr
	}
	return f.probeWidth, f.probeHeight, nil
}

func (f *fakeProcessor) ExtractAudioSegment(_ context.Context, _, dst string, _ int) error {
	f.extractCalls++
	if f.extractErr != nil {
		return f.extractErr
	}
	return os.WriteFile(dst, []byte("segment"), 0o644)
}

func (f *fakeProcessor) RenderWaveform(_ context.Context, _, dst string, width, height int) error {
	if f.renderErr != nil {
		return f.renderErr
	}
	f.renderWidth, f.renderHeight = width, height
	return os.WriteFile(dst, []byte("wave"), 0o644)
}

func (f *fakeProcessor) OverlayImage(_ context.Context, _, _, dst string, _ float64) error {
	if f.overlayErr != nil {
		return f.overlayErr
	}
	return os.WriteFile(dst, []byte("composite"), 0o644)
}

func (f *fakeProcessor) EncodeStillVideo(_ context.Context, still, _, dst string, _ int, _ string) error {
	f.encodeCalls++
	f.encodeStill = still
	if f.encodeErr != nil {
		return f.encodeErr
	}
	return os.WriteFile(dst, []byte("video"), 0o644)
}

func defaultOptions() Options {
	return Options{
		WaveformSeconds: 50,
		VideoMaxSeconds: 600,
		AudioBitrate:    "192k",
		CanvasWidth:     1200,
		CanvasHeight:    630,
		DefaultCover:    "cover.jpg",
	}
}

func musicEntry() *post.Entry {
	return &post.Entry{
		Slug:        "first-session",
		Tags:        []string{"music"},
		MusicSource: "a.mp3",
	}
}

func newGenerator(proc Processor) *Generator {
	return New(proc, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), defaultOptions())
}

func TestProcessGeneratesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.mp3"), "audio")
	testsupport.WriteFile(t, filepath.Join(dir, "cover.jpg"), "cover")

	proc := &fakeProcessor{probeWidth: 1400, probeHeight: 1400}
	entry := musicEntry()
	newGenerator(proc).Process(context.Background(), entry, dir)

	if entry.WaveformImage != "a-waveform.jpg" {
		t.Fatalf("unexpected waveform reference: %q", entry.WaveformImage)
	}
	if entry.VideoSource != "a.mp4" {
		t.Fatalf("unexpected video reference: %q", entry.VideoSource)
	}
	for _, name := range []string{"a-waveform.jpg", "a.mp4"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("artifact %s missing: %v", name, err)
		}
	}
	if proc.renderWidth != 1400 || proc.renderHeight != 1400 {
		t.Fatalf("waveform should use probed cover size, got %dx%d", proc.renderWidth, proc.renderHeight)
	}
	if filepath.Base(proc.encodeStill) != "a-waveform.jpg" {
		t.Fatalf("video should use the waveform as its still, got %q", proc.encodeStill)
	}
}

func TestProcessFallsBackToDefaultCanvas(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.mp3"), "audio")

	proc := &fakeProcessor{probeErr: errors.New("no such file")}
	entry := musicEntry()
	newGenerator(proc).Process(context.Background(), entry, dir)

	if proc.renderWidth != 1200 || proc.renderHeight != 630 {
		t.Fatalf("expected default canvas, got %dx%d", proc.renderWidth, proc.renderHeight)
	}
}

func TestProcessWaveformFailureFallsBackToCover(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.mp3"), "audio")

	proc := &fakeProcessor{renderErr: errors.New("showwavespic unavailable")}
	entry := musicEntry()
	newGenerator(proc).Process(context.Background(), entry, dir)

	if entry.WaveformImage != "" {
		t.Fatalf("waveform reference must stay unset on failure, got %q", entry.WaveformImage)
	}
	if entry.VideoSource != "a.mp4" {
		t.Fatalf("video should still be generated, got %q", entry.VideoSource)
	}
	if filepath.Base(proc.encodeStill) != "cover.jpg" {
		t.Fatalf("video should fall back to the plain cover, got %q", proc.encodeStill)
	}
}

func TestProcessEncoderFailureLeavesVideoUnset(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.mp3"), "audio")

	proc := &fakeProcessor{encodeErr: errors.New("ffmpeg: executable file not found")}
	entry := musicEntry()
	newGenerator(proc).Process(context.Background(), entry, dir)

	if entry.VideoSource != "" {
		t.Fatalf("video reference must stay unset on encoder failure, got %q", entry.VideoSource)
	}
	if entry.WaveformImage != "a-waveform.jpg" {
		t.Fatalf("waveform should still succeed, got %q", entry.WaveformImage)
	}
}

func TestProcessSkipsUpToDateVideo(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "a.mp3")
	video := filepath.Join(dir, "a.mp4")
	testsupport.WriteFile(t, audio, "audio")
	testsupport.WriteFile(t, video, "old video")

	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(audio, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	proc := &fakeProcessor{}
	entry := musicEntry()
	newGenerator(proc).Process(context.Background(), entry, dir)

	if proc.encodeCalls != 0 {
		t.Fatalf("up-to-date video must not be re-encoded, got %d calls", proc.encodeCalls)
	}
	if entry.VideoSource != "a.mp4" {
		t.Fatalf("skipped video should still be referenced, got %q", entry.VideoSource)
	}
}

func TestProcessRegeneratesStaleVideo(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "a.mp3")
	video := filepath.Join(dir, "a.mp4")
	testsupport.WriteFile(t, audio, "audio")
	testsupport.WriteFile(t, video, "stale")

	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(video, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	proc := &fakeProcessor{}
	newGenerator(proc).Process(context.Background(), musicEntry(), dir)

	if proc.encodeCalls != 1 {
		t.Fatalf("stale video should be re-encoded once, got %d calls", proc.encodeCalls)
	}
}

func TestProcessSecondRunSkipsEncode(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "a.mp3")
	testsupport.WriteFile(t, audio, "audio")
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(audio, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	proc := &fakeProcessor{}
	gen := newGenerator(proc)
	gen.Process(context.Background(), musicEntry(), dir)
	firstInfo, err := os.Stat(filepath.Join(dir, "a.mp4"))
	if err != nil {
		t.Fatalf("stat video: %v", err)
	}

	gen.Process(context.Background(), musicEntry(), dir)

	if proc.encodeCalls != 1 {
		t.Fatalf("second run must skip regeneration, got %d encode calls", proc.encodeCalls)
	}
	secondInfo, err := os.Stat(filepath.Join(dir, "a.mp4"))
	if err != nil {
		t.Fatalf("stat video: %v", err)
	}
	if !firstInfo.ModTime().Equal(secondInfo.ModTime()) {
		t.Fatal("video mtime must be unchanged after a skipped run")
	}
}

func TestProcessIgnoresNonMusicEntries(t *testing.T) {
	dir := t.TempDir()
	proc := &fakeProcessor{}
	entry := &post.Entry{Slug: "essay", Tags: []string{"writing"}}
	newGenerator(proc).Process(context.Background(), entry, dir)

	if proc.extractCalls != 0 || proc.encodeCalls != 0 {
		t.Fatal("non-music entries must not invoke the processor")
	}
}

func TestProcessMissingAudioIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	proc := &fakeProcessor{}
	entry := musicEntry()
	newGenerator(proc).Process(context.Background(), entry, dir)

	if proc.extractCalls != 0 {
		t.Fatal("missing audio must short-circuit before tool calls")
	}
	if entry.WaveformImage != "" || entry.VideoSource != "" {
		t.Fatal("references must stay unset when the audio source is missing")
	}
}
