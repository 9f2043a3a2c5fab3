// Package logging builds structured loggers on log/slog for the jsondiff
// command. Records are written as JSON or as logfmt-style text.
package logging
