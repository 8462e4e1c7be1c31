package post

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"phono/internal/logging"
	"phono/internal/render"
)

// dateFormats are tried in order when parsing the front-matter date.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	MusicSource string   `yaml:"music-source"`
	CoverImage  string   `yaml:"cover-image"`
}

// Parser loads markdown posts from a content directory.
type Parser struct {
	markdown *render.Markdown
	logger   *slog.Logger
	caser    cases.Caser
}

// NewParser constructs a Parser around the shared markdown renderer.
func NewParser(markdown *render.Markdown, logger *slog.Logger) *Parser {
	return &Parser{
		markdown: markdown,
		logger:   logging.WithComponent(logger, "post"),
		caser:    cases.Title(language.English),
	}
}

// Load parses every *.md file directly under dir into one Entry each. File
// reads fan out concurrently; the call joins all of them before returning.
// Any read or front-matter failure fails the whole load, and duplicate slugs
// are rejected naming both source files.
func (p *Parser) Load(dir string) ([]*Entry, error) {
	paths, err := listMarkdown(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, len(paths))
	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			entries[i], errs[i] = p.parseFile(path)
		}(i, path)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	bySlug := map[string]string{}
	for _, entry := range entries {
		if prev, ok := bySlug[entry.Slug]; ok {
			return nil, fmt.Errorf("duplicate slug %q: %s and %s", entry.Slug, prev, entry.SourcePath)
		}
		bySlug[entry.Slug] = entry.SourcePath
	}

	return entries, nil
}

func (p *Parser) parseFile(path string) (*Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read post %s: %w", path, err)
	}

	var fm frontMatter
	body, err := frontmatter.MustParse(bytes.NewReader(raw), &fm)
	if err != nil {
		return nil, fmt.Errorf("parse front matter of %s: %w", path, err)
	}

	content, err := p.markdown.Render(body)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}

	slug := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	entry := &Entry{
		Slug:        slug,
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Tags:        fm.Tags,
		Content:     content,
		MusicSource: strings.TrimSpace(fm.MusicSource),
		CoverImage:  strings.TrimSpace(fm.CoverImage),
		SourcePath:  path,
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	if entry.Title == "" {
		entry.Title = p.caser.String(strings.ReplaceAll(strings.ReplaceAll(slug, "-", " "), "_", " "))
	}
	entry.Date = p.parseDate(fm.Date, path)

	return entry, nil
}

func (p *Parser) parseDate(value, path string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		p.logger.Warn("post has no date; it will sort last", slog.String("path", path))
		return time.Time{}
	}
	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, trimmed); err == nil {
			return parsed
		}
	}
	p.logger.Warn("unparseable post date; it will sort last",
		slog.String("path", path), slog.String("date", trimmed))
	return time.Time{}
}

func listMarkdown(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content directory %s: %w", dir, err)
	}
	var paths []string
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(strings.ToLower(item.Name()), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(dir, item.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
