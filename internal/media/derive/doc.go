// Package derive turns an audio post's source file and cover image into two
// artifacts: a waveform preview image (cover dimensions, waveform composited
// at half opacity) and a looped-still preview video capped at the configured
// duration.
//
// Generation is per entry and sequential across entries; each operation
// spawns an external encoder process, so failure isolation matters more than
// throughput. An existing video newer than its audio source is skipped
// outright. Artifact reference fields on the entry are only ever set when
// the file exists on disk after the tool run, and transient files are
// removed on success and failure alike.
package derive
