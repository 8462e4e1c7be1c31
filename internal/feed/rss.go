package feed

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"phono/internal/config"
	"phono/internal/opengraph"
	"phono/internal/post"
)

const (
	contentNamespace = "http://purl.org/rss/1.0/modules/content/"
	itunesNamespace  = "http://www.itunes.com/dtds/podcast-1.0.dtd"
)

type rss struct {
	XMLName   xml.Name `xml:"rss"`
	Version   string   `xml:"version,attr"`
	ContentNS string   `xml:"xmlns:content,attr"`
	ItunesNS  string   `xml:"xmlns:itunes,attr"`
	Channel   channel  `xml:"channel"`
}

type channel struct {
	Title        string `xml:"title"`
	Link         string `xml:"link"`
	Description  string `xml:"description"`
	Language      string `xml:"language,omitempty"`
	ItunesAuthor  string `xml:"itunes:author,omitempty"`
	ItunesSummary string `xml:"itunes:summary,omitempty"`
	Items         []item `xml:"item"`
}

type cdata struct {
	Value string `xml:",cdata"`
}

type guid struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

type enclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

type item struct {
	Title        cdata      `xml:"title"`
	Link         string     `xml:"link"`
	GUID         guid       `xml:"guid"`
	PubDate      string     `xml:"pubDate"`
	Description  cdata      `xml:"description"`
	Content      cdata      `xml:"content:encoded"`
	Enclosure    *enclosure `xml:"enclosure,omitempty"`
	ItunesAuthor string     `xml:"itunes:author,omitempty"`
}

// Build assembles the RSS 2.0 podcast feed from the newest maxItems entries.
// entries must already be in site sort order (date descending). baseDir is
// used to stat audio files for enclosure lengths; a failed stat reports
// length 0 rather than dropping the enclosure.
func Build(entries []*post.Entry, cfg *config.Config, baseDir string) ([]byte, error) {
	maxItems := cfg.Feed.MaxItems
	if maxItems > 0 && len(entries) > maxItems {
		entries = entries[:maxItems]
	}

	feed := rss{
		Version:   "2.0",
		ContentNS: contentNamespace,
		ItunesNS:  itunesNamespace,
		Channel: channel{
			Title:         cfg.Site.Title,
			Link:          cfg.Site.BaseURL,
			Description:   cfg.Site.Description,
			Language:      "en",
			ItunesAuthor:  cfg.Site.Author,
			ItunesSummary: cfg.Site.Description,
		},
	}

	for _, entry := range entries {
		permalink := entry.Permalink(cfg.Site.BaseURL)
		row := item{
			Title:        cdata{entry.Title},
			Link:         permalink,
			GUID:         guid{Value: permalink, IsPermaLink: true},
			PubDate:      entry.Date.Format(time.RFC1123Z),
			Description:  cdata{opengraph.Excerpt(entry)},
			Content:      cdata{entry.Content},
			ItunesAuthor: cfg.Site.Author,
		}
		if entry.IsMusic() {
			row.Enclosure = &enclosure{
				URL:    cfg.Site.BaseURL + "/" + entry.MusicSource,
				Length: fileSize(filepath.Join(baseDir, entry.MusicSource)),
				Type:   "audio/mpeg",
			}
		}
		feed.Channel.Items = append(feed.Channel.Items, row)
	}

	payload, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}
	return append([]byte(xml.Header), append(payload, '\n')...), nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
