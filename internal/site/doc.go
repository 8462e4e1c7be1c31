// Package site assembles the output tree: it parses posts, triggers
// derived-media generation, renders the home and per-post pages through the
// placeholder templates, and writes the manifest, feed, and copied assets.
package site
