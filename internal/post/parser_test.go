package post_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"phono/internal/post"
	"phono/internal/render"
	"phono/internal/testsupport"
)

func newParser() *post.Parser {
	return post.NewParser(render.NewMarkdown(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoadParsesFullFrontMatter(t *testing.T) {
	dir := t.TempDir()
	testsupport.WritePost(t, dir, "first-session",
		`title: "First Session"
date: 2024-01-01
description: "A night at the desk"
tags:
  - music
  - ambient
music-source: audio/first.mp3
cover-image: images/first.jpg`,
		"Some **notes**.")

	entries, err := newParser().Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Slug != "first-session" {
		t.Fatalf("unexpected slug: %q", entry.Slug)
	}
	if entry.Title != "First Session" {
		t.Fatalf("unexpected title: %q", entry.Title)
	}
	if !entry.Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", entry.Date)
	}
	if len(entry.Tags) != 2 || entry.Tags[0] != "music" || entry.Tags[1] != "ambient" {
		t.Fatalf("tags should keep insertion order: %v", entry.Tags)
	}
	if entry.MusicSource != "audio/first.mp3" || entry.CoverImage != "images/first.jpg" {
		t.Fatalf("unexpected media paths: %q %q", entry.MusicSource, entry.CoverImage)
	}
	if !strings.Contains(entry.Content, "<strong>notes</strong>") {
		t.Fatalf("body not rendered: %q", entry.Content)
	}
	if !entry.IsMusic() {
		t.Fatal("entry should count as a music post")
	}
}

func TestLoadDefaultsMissingKeys(t *testing.T) {
	dir := t.TempDir()
	testsupport.WritePost(t, dir, "liner-notes", `date: 2024-02-02`, "Body.")

	entries, err := newParser().Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	entry := entries[0]
	if entry.Title != "Liner Notes" {
		t.Fatalf("title should default to the title-cased stem, got %q", entry.Title)
	}
	if entry.Description != "" {
		t.Fatalf("description should default empty, got %q", entry.Description)
	}
	if entry.Tags == nil || len(entry.Tags) != 0 {
		t.Fatalf("tags should default to an empty list, got %#v", entry.Tags)
	}
	if entry.MusicSource != "" || entry.CoverImage != "" {
		t.Fatal("media paths should default to absent")
	}
	if entry.IsMusic() {
		t.Fatal("entry without music tag must not count as a music post")
	}
}

func TestLoadUnparseableDateYieldsZeroTime(t *testing.T) {
	dir := t.TempDir()
	testsupport.WritePost(t, dir, "undated", `title: Undated
date: "sometime in march"`, "Body.")

	entries, err := newParser().Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !entries[0].Date.IsZero() {
		t.Fatalf("expected zero date, got %v", entries[0].Date)
	}
}

func TestLoadFailsOnMissingFrontMatter(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, dir+"/raw.md", "no front matter here\n")

	if _, err := newParser().Load(dir); err == nil {
		t.Fatal("expected load to fail for a post without front matter")
	}
}

func TestLoadRejectsDuplicateSlugs(t *testing.T) {
	dir := t.TempDir()
	testsupport.WritePost(t, dir, "echo", `title: One
date: 2024-01-01`, "a")
	// Same stem, different extension casing: both files map to slug "echo".
	testsupport.WriteFile(t, dir+"/echo.MD", "---\ntitle: Two\ndate: 2024-01-02\n---\n\nb\n")

	if _, err := newParser().Load(dir); err == nil || !strings.Contains(err.Error(), "duplicate slug") {
		t.Fatalf("expected duplicate slug error, got %v", err)
	}
}

func TestSortIsDeterministicOnEqualDates(t *testing.T) {
	date := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	entries := []*post.Entry{
		{Slug: "b-side", Date: date},
		{Slug: "a-side", Date: date},
		{Slug: "older", Date: date.AddDate(0, -1, 0)},
		{Slug: "newer", Date: date.AddDate(0, 1, 0)},
		{Slug: "undated"},
	}
	post.Sort(entries)

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Slug
	}
	want := []string{"newer", "a-side", "b-side", "older", "undated"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: %v", got)
		}
	}
}

func TestTagUnionSortedAndDeduplicated(t *testing.T) {
	entries := []*post.Entry{
		{Tags: []string{"music", "ambient"}},
		{Tags: []string{"ambient", "tape"}},
		{Tags: []string{}},
	}
	tags := post.TagUnion(entries)
	want := []string{"ambient", "music", "tape"}
	if len(tags) != len(want) {
		t.Fatalf("unexpected tags: %v", tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("unexpected tags: %v", tags)
		}
	}
}
