// Package logging builds slog loggers for the CLI and watch daemon.
//
// Two formats are supported: a console handler producing one line per record
// with the component attribute folded into the message prefix, and a JSON
// handler with ts/level/msg key names for log aggregation. Output can fan out
// to stdout and a phono.log file under the configured log directory.
package logging
