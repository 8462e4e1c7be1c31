package main

import (
	"os"
	"path/filepath"
	"testing"

	"phono/internal/testsupport"
)

func TestBuildCommandProducesOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WritePost(t, env.contentDir, "hello",
		"title: Hello\ndate: 2026-01-01\ntags: [notes]", "First post.")

	out, _, err := runCLI(t, []string{"build"}, env.configPath)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	requireContains(t, out, "notes")

	for _, rel := range []string{"index.html", "posts.json", "rss.xml", "posts/hello.html"} {
		if _, err := os.Stat(filepath.Join(env.outputDir, rel)); err != nil {
			t.Fatalf("missing output %s: %v", rel, err)
		}
	}
}

func TestBuildCommandFailsOnDuplicateSlug(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WritePost(t, env.contentDir, "dup", "title: One", "body one")
	if err := os.WriteFile(filepath.Join(env.contentDir, "dup.MD"),
		[]byte("---\ntitle: Two\n---\n\nbody two\n"), 0o644); err != nil {
		t.Fatalf("write colliding post: %v", err)
	}

	if _, _, err := runCLI(t, []string{"build"}, env.configPath); err == nil {
		t.Fatal("expected duplicate slug error")
	}
}
