// Package mediacache persists derived-media generation outcomes in SQLite.
//
// Each entry slug maps to one row recording the audio source, artifact
// paths, outcome status, and timestamp of the last attempt. The ledger backs
// the `phono media status` command; it never drives skip decisions, which
// rely on filesystem modification times alone.
package mediacache
