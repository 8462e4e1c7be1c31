package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"phono/internal/config"
	"phono/internal/feed"
	"phono/internal/fileutil"
	"phono/internal/logging"
	"phono/internal/media/derive"
	"phono/internal/opengraph"
	"phono/internal/post"
	"phono/internal/render"
)

// Summary describes one completed build.
type Summary struct {
	BuildID  string
	Posts    int
	Tags     []string
	Duration time.Duration
}

// Builder orchestrates a full site build: parse, derive media, sort, and
// write every output artifact.
type Builder struct {
	cfg    *config.Config
	logger *slog.Logger
	parser *post.Parser
	// gen is nil when derived-media generation is disabled.
	gen *derive.Generator
}

// NewBuilder wires the build pipeline around the given generator.
func NewBuilder(cfg *config.Config, logger *slog.Logger, gen *derive.Generator) *Builder {
	return &Builder{
		cfg:    cfg,
		logger: logger,
		parser: post.NewParser(render.NewMarkdown(), logger),
		gen:    gen,
	}
}

// Build runs one full rebuild. Setup failures (templates, content directory,
// output writes) abort with an error; derived-media failures degrade
// per entry inside the generator and never surface here.
func (b *Builder) Build(ctx context.Context) (*Summary, error) {
	start := time.Now()
	buildID := uuid.NewString()[:8]
	log := logging.WithComponent(b.logger, "site").With(slog.String(logging.FieldBuildID, buildID))

	if err := fileutil.EnsureDir(b.cfg.Paths.OutputDir); err != nil {
		return nil, err
	}

	templates, err := LoadTemplates(b.cfg.Paths.TemplatesDir)
	if err != nil {
		return nil, err
	}

	entries, err := b.parser.Load(b.cfg.Paths.ContentDir)
	if err != nil {
		return nil, err
	}
	log.Info("parsed posts", slog.Int("count", len(entries)))

	if b.gen != nil {
		// Sequential on purpose: each entry spawns external encoder
		// processes and the up-to-date skip already bounds the cost.
		for _, entry := range entries {
			b.gen.Process(ctx, entry, b.cfg.Paths.ContentDir)
		}
	}

	post.Sort(entries)
	tags := post.TagUnion(entries)

	manifest, err := buildManifest(entries)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(b.cfg.Paths.OutputDir, "posts.json"), manifest, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	postsDir := filepath.Join(b.cfg.Paths.OutputDir, "posts")
	if err := fileutil.EnsureDir(postsDir); err != nil {
		return nil, err
	}

	cards := make([]string, 0, len(entries))
	for _, entry := range entries {
		cards = append(cards, renderCard(entry, cardOptions{permalink: true}))

		og := opengraph.Build(entry, b.cfg.Site)
		page := renderPostPage(templates.Post, entry, og)
		target := filepath.Join(postsDir, entry.Slug+".html")
		if err := os.WriteFile(target, []byte(page), 0o644); err != nil {
			return nil, fmt.Errorf("write post page %s: %w", target, err)
		}
	}

	home := renderHome(templates.Home, cards, tags)
	if err := os.WriteFile(filepath.Join(b.cfg.Paths.OutputDir, "index.html"), []byte(home), 0o644); err != nil {
		return nil, fmt.Errorf("write home page: %w", err)
	}

	rss, err := feed.Build(entries, b.cfg, b.cfg.Paths.ContentDir)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(b.cfg.Paths.OutputDir, "rss.xml"), rss, 0o644); err != nil {
		return nil, fmt.Errorf("write feed: %w", err)
	}

	if err := fileutil.CopyTree(b.cfg.Paths.StaticDir, b.cfg.Paths.OutputDir); err != nil {
		return nil, fmt.Errorf("copy static assets: %w", err)
	}
	b.copyEntryAssets(entries, log)

	summary := &Summary{
		BuildID:  buildID,
		Posts:    len(entries),
		Tags:     tags,
		Duration: time.Since(start),
	}
	log.Info("build complete",
		slog.Int("posts", summary.Posts),
		slog.Int("tags", len(summary.Tags)),
		slog.Duration("duration", summary.Duration))
	return summary, nil
}

// copyEntryAssets mirrors every referenced asset (audio, covers, derived
// media) from the content tree into the output tree. A missing asset is a
// warning, not a build failure; the page just links to a 404 until the
// author adds the file.
func (b *Builder) copyEntryAssets(entries []*post.Entry, log *slog.Logger) {
	copied := map[string]struct{}{}
	for _, entry := range entries {
		for _, rel := range []string{entry.MusicSource, entry.CoverImage, entry.VideoSource, entry.WaveformImage} {
			if rel == "" {
				continue
			}
			if _, done := copied[rel]; done {
				continue
			}
			copied[rel] = struct{}{}

			src := filepath.Join(b.cfg.Paths.ContentDir, rel)
			dst := filepath.Join(b.cfg.Paths.OutputDir, rel)
			if err := fileutil.CopyFile(src, dst); err != nil {
				log.Warn("copy asset", slog.String(logging.FieldSlug, entry.Slug),
					slog.String("asset", rel), slog.Any("error", err))
			}
		}
	}
}
