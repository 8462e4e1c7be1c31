package opengraph

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"phono/internal/config"
	"phono/internal/post"
)

// excerptRunes is how much of the stripped content stands in for a missing
// description.
const excerptRunes = 200

var stripPolicy = bluemonday.StrictPolicy()

// Meta is one social-preview tag. Property renders as an Open Graph
// property= attribute, Name as a plain name= attribute (Twitter cards).
type Meta struct {
	Property string
	Name     string
	Content  string
}

// Tags is the ordered tag set for one entry.
type Tags []Meta

// HTML renders the tag set as meta elements, one per line.
func (t Tags) HTML() string {
	var b strings.Builder
	for _, meta := range t {
		if meta.Property != "" {
			fmt.Fprintf(&b, "<meta property=\"%s\" content=\"%s\">\n", meta.Property, html.EscapeString(meta.Content))
		} else {
			fmt.Fprintf(&b, "<meta name=\"%s\" content=\"%s\">\n", meta.Name, html.EscapeString(meta.Content))
		}
	}
	return b.String()
}

// Build derives the social-preview tag set for an entry. Rich-media posts
// with a generated video advertise video and audio players; those with only
// a waveform image fall back to an image preview; everything else is a plain
// article.
func Build(entry *post.Entry, site config.Site) Tags {
	description := Excerpt(entry)
	permalink := entry.Permalink(site.BaseURL)

	tags := Tags{
		{Property: "og:title", Content: entry.Title},
		{Property: "og:description", Content: description},
		{Property: "og:url", Content: permalink},
		{Property: "og:site_name", Content: site.Title},
	}

	switch {
	case entry.IsMusic() && entry.VideoSource != "":
		videoURL := absoluteURL(site.BaseURL, entry.VideoSource)
		audioURL := absoluteURL(site.BaseURL, entry.MusicSource)
		tags = append(tags,
			Meta{Property: "og:type", Content: "video.other"},
			Meta{Property: "og:video", Content: videoURL},
			Meta{Property: "og:video:type", Content: "video/mp4"},
			Meta{Property: "og:audio", Content: audioURL},
			Meta{Property: "og:audio:type", Content: "audio/mpeg"},
			Meta{Name: "twitter:card", Content: "player"},
			Meta{Name: "twitter:player", Content: videoURL},
		)
	case entry.IsMusic() && entry.WaveformImage != "":
		tags = append(tags,
			Meta{Property: "og:type", Content: "article"},
			Meta{Property: "og:image", Content: absoluteURL(site.BaseURL, entry.WaveformImage)},
			Meta{Name: "twitter:card", Content: "summary_large_image"},
		)
	default:
		tags = append(tags,
			Meta{Property: "og:type", Content: "article"},
			Meta{Name: "twitter:card", Content: "summary"},
		)
	}

	return tags
}

// Excerpt returns the entry's explicit description, or the first 200
// characters of its tag-stripped content with an ellipsis marker. The cut is
// a plain character slice, not word-boundary aware.
func Excerpt(entry *post.Entry) string {
	if entry.Description != "" {
		return entry.Description
	}
	stripped := strings.TrimSpace(stripPolicy.Sanitize(entry.Content))
	runes := []rune(stripped)
	if len(runes) <= excerptRunes {
		return stripped
	}
	return string(runes[:excerptRunes]) + "…"
}

func absoluteURL(baseURL, rel string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(rel, "/")
}
