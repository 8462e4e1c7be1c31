// Package render wraps the goldmark markdown engine behind a small renderer
// type so the rest of the pipeline treats markdown-to-HTML as a pure function.
package render
