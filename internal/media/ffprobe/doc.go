// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The builder uses it to read cover-image pixel dimensions before rendering a
// waveform at matching size, and to sanity-check audio durations. The probe
// is an external-tool invocation and may fail; callers treat failure as "no
// dimensions available" and fall back to the configured canvas size.
package ffprobe
