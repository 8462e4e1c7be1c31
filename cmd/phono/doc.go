// Command phono builds a music-oriented static site: one-shot builds, a
// continuous watch mode, derived-media status, and configuration helpers.
package main
