package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Placeholder markers substituted into the opaque template strings. Each
// marker is replaced at its first occurrence only.
const (
	MarkerPosts   = "<!--phono:posts-->"
	MarkerTags    = "<!--phono:tags-->"
	MarkerContent = "<!--phono:content-->"
	MarkerTitle   = "<!--phono:title-->"
	MarkerOG      = "<!--phono:og-->"
)

// Templates holds the two page templates as opaque strings.
type Templates struct {
	Home string
	Post string
}

// LoadTemplates reads index.html and post.html from dir. A missing or
// unreadable template is fatal to the build.
func LoadTemplates(dir string) (Templates, error) {
	home, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		return Templates{}, fmt.Errorf("load home template: %w", err)
	}
	postTpl, err := os.ReadFile(filepath.Join(dir, "post.html"))
	if err != nil {
		return Templates{}, fmt.Errorf("load post template: %w", err)
	}
	return Templates{Home: string(home), Post: string(postTpl)}, nil
}

func substitute(template, marker, value string) string {
	return strings.Replace(template, marker, value, 1)
}
