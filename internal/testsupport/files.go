package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// MkdirAll creates the directory tree or fails the test.
func MkdirAll(t testing.TB, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	MkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePost writes a markdown post with the given YAML front matter block and
// body into dir under slug.md.
func WritePost(t testing.TB, dir, slug, front, body string) string {
	t.Helper()
	path := filepath.Join(dir, slug+".md")
	WriteFile(t, path, "---\n"+front+"\n---\n\n"+body+"\n")
	return path
}

// Templates writes minimal index and post templates into dir using the
// placeholder markers the site renderer substitutes.
func Templates(t testing.TB, dir string) {
	t.Helper()
	WriteFile(t, filepath.Join(dir, "index.html"),
		"<html><head><title>Home</title></head><body>\n<nav><!--phono:tags--></nav>\n<main><!--phono:posts--></main>\n</body></html>\n")
	WriteFile(t, filepath.Join(dir, "post.html"),
		"<html><head><title><!--phono:title--></title><!--phono:og--></head><body>\n<main><!--phono:content--></main>\n</body></html>\n")
}
