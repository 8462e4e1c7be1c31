package site

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"phono/internal/post"
)

func TestBuildManifestFields(t *testing.T) {
	entries := []*post.Entry{
		{
			Slug:          "track",
			Title:         "Track",
			Date:          time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC),
			Tags:          []string{"music"},
			Description:   "A track.",
			MusicSource:   "audio/track.mp3",
			VideoSource:   "audio/track.mp4",
			WaveformImage: "audio/track-waveform.jpg",
		},
		{
			Slug:  "note",
			Title: "Note",
			Date:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	payload, err := buildManifest(entries)
	if err != nil {
		t.Fatalf("build manifest: %v", err)
	}
	if !strings.HasSuffix(string(payload), "\n") {
		t.Fatal("manifest should end with a newline")
	}

	var records []ManifestRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	track := records[0]
	if track.Date != "2026-02-01T08:30:00Z" {
		t.Fatalf("unexpected date: %q", track.Date)
	}
	if track.MusicSource == nil || *track.MusicSource != "audio/track.mp3" {
		t.Fatalf("unexpected music source: %v", track.MusicSource)
	}
	if track.VideoSource == nil || *track.VideoSource != "audio/track.mp4" {
		t.Fatalf("unexpected video source: %v", track.VideoSource)
	}
	if track.WaveformImage == nil || *track.WaveformImage != "audio/track-waveform.jpg" {
		t.Fatalf("unexpected waveform image: %v", track.WaveformImage)
	}

	note := records[1]
	if note.MusicSource != nil || note.VideoSource != nil || note.WaveformImage != nil {
		t.Fatalf("absent media fields should be null: %+v", note)
	}
}

func TestBuildManifestEmitsNullLiterals(t *testing.T) {
	payload, err := buildManifest([]*post.Entry{{Slug: "bare", Title: "Bare"}})
	if err != nil {
		t.Fatalf("build manifest: %v", err)
	}
	if !strings.Contains(string(payload), `"musicSource": null`) {
		t.Fatalf("expected null literal in manifest:\n%s", payload)
	}
}
