// Package ffmpeg wraps the external ffmpeg/ffprobe binaries behind the five
// media operations the derive package needs: probing image dimensions,
// trimming audio, rendering waveforms, compositing images, and encoding a
// still image plus audio into a preview video.
//
// Every operation is a subprocess invocation and may fail when the binary is
// missing or an input is bad; errors carry the trimmed tool output. Callers
// treat these failures as non-fatal per entry.
package ffmpeg
