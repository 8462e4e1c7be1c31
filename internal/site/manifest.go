package site

import (
	"encoding/json"
	"fmt"
	"time"

	"phono/internal/post"
)

// ManifestRecord is one row of posts.json, consumed client-side by the tag
// filter and anything else that wants the post list without scraping HTML.
type ManifestRecord struct {
	Title         string   `json:"title"`
	Date          string   `json:"date"`
	Tags          []string `json:"tags"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	MusicSource   *string  `json:"musicSource"`
	VideoSource   *string  `json:"videoSource"`
	WaveformImage *string  `json:"waveformImage"`
}

// buildManifest renders the entries (already in site order) as a JSON array.
// Absent media fields serialize as null, not empty strings.
func buildManifest(entries []*post.Entry) ([]byte, error) {
	records := make([]ManifestRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, ManifestRecord{
			Title:         entry.Title,
			Date:          entry.Date.UTC().Format(time.RFC3339),
			Tags:          entry.Tags,
			Slug:          entry.Slug,
			Description:   entry.Description,
			MusicSource:   nullable(entry.MusicSource),
			VideoSource:   nullable(entry.VideoSource),
			WaveformImage: nullable(entry.WaveformImage),
		})
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(payload, '\n'), nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
