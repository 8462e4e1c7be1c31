package site

import (
	"fmt"
	"html"
	"strings"
	"time"

	"phono/internal/opengraph"
	"phono/internal/post"
)

type cardOptions struct {
	// permalink wraps the title in a link to the post page and adds the
	// data-tags attribute used by the home-page tag filter.
	permalink bool
}

// renderCard produces the shared card markup: date, title, tag badges,
// optional audio player, and the rendered body.
func renderCard(entry *post.Entry, opts cardOptions) string {
	var b strings.Builder

	if opts.permalink {
		fmt.Fprintf(&b, "<article class=\"post\" data-tags=\"%s\">\n",
			html.EscapeString(strings.Join(entry.Tags, " ")))
	} else {
		b.WriteString("<article class=\"post\">\n")
	}

	if !entry.Date.IsZero() {
		fmt.Fprintf(&b, "<time datetime=\"%s\">%s</time>\n",
			entry.Date.Format(time.RFC3339), entry.Date.Format("January 2, 2006"))
	}

	title := html.EscapeString(entry.Title)
	if opts.permalink {
		fmt.Fprintf(&b, "<h2><a href=\"/posts/%s.html\">%s</a></h2>\n", entry.Slug, title)
	} else {
		fmt.Fprintf(&b, "<h2>%s</h2>\n", title)
	}

	if len(entry.Tags) > 0 {
		b.WriteString("<div class=\"tags\">")
		for _, tag := range entry.Tags {
			fmt.Fprintf(&b, "<span class=\"tag\">%s</span>", html.EscapeString(tag))
		}
		b.WriteString("</div>\n")
	}

	if entry.MusicSource != "" {
		fmt.Fprintf(&b, "<audio controls preload=\"none\" src=\"/%s\"></audio>\n", entry.MusicSource)
	}

	fmt.Fprintf(&b, "<div class=\"content\">%s</div>\n", entry.Content)
	b.WriteString("</article>\n")
	return b.String()
}

// renderTagControls produces the home-page filter buttons: one "all" control
// plus one per site-wide tag, in the given (already sorted) order.
func renderTagControls(tags []string) string {
	var b strings.Builder
	b.WriteString("<button class=\"tag-filter\" data-tag=\"\">all</button>\n")
	for _, tag := range tags {
		fmt.Fprintf(&b, "<button class=\"tag-filter\" data-tag=\"%s\">%s</button>\n",
			html.EscapeString(tag), html.EscapeString(tag))
	}
	return b.String()
}

// renderHome substitutes the accumulated cards and tag controls into the
// home template.
func renderHome(template string, cards []string, tags []string) string {
	page := substitute(template, MarkerPosts, strings.Join(cards, ""))
	return substitute(page, MarkerTags, renderTagControls(tags))
}

// renderPostPage substitutes one entry's card, title, and Open Graph block
// into the post template.
func renderPostPage(template string, entry *post.Entry, og opengraph.Tags) string {
	page := substitute(template, MarkerContent, renderCard(entry, cardOptions{}))
	page = substitute(page, MarkerTitle, html.EscapeString(entry.Title))
	return substitute(page, MarkerOG, og.HTML())
}
