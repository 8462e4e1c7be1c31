package post

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// MusicTag marks an entry as an audio post when present in its tag list.
const MusicTag = "music"

// Entry is the normalized in-memory representation of one source post plus
// its derived artifacts.
type Entry struct {
	// Slug is the source filename stem; stable across runs and used as the
	// primary key for output paths and URLs.
	Slug        string
	Title       string
	Description string
	// Date governs sort order and feed publication; zero when the front
	// matter value was absent or unparseable.
	Date time.Time
	// Tags keep front-matter insertion order; dedup happens site-wide only.
	Tags []string
	// Content is the rendered HTML body, produced once at parse time.
	Content string
	// MusicSource and CoverImage are content-relative asset paths, empty
	// when the front-matter key was absent.
	MusicSource string
	CoverImage  string
	// VideoSource and WaveformImage are set only after the corresponding
	// artifact was demonstrably produced on disk.
	VideoSource   string
	WaveformImage string
	// SourcePath is the file the entry was parsed from.
	SourcePath string
}

// IsMusic reports whether the entry is a rich-media post: tagged "music" and
// referencing an audio asset.
func (e *Entry) IsMusic() bool {
	return e.MusicSource != "" && slices.Contains(e.Tags, MusicTag)
}

// Permalink returns the absolute URL of the entry's page.
func (e *Entry) Permalink(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/posts/" + e.Slug + ".html"
}

// Sort orders entries by date descending with slug ascending as the
// tie-break, so equal dates produce a deterministic order.
func Sort(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Slug < entries[j].Slug
		}
		return entries[i].Date.After(entries[j].Date)
	})
}

// TagUnion returns the alphabetically sorted deduplicated union of every
// entry's tags.
func TagUnion(entries []*Entry) []string {
	seen := map[string]struct{}{}
	var tags []string
	for _, entry := range entries {
		for _, tag := range entry.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}
