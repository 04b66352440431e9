// Package logging assembles the slog loggers used for diagnostics.
//
// It owns the console and JSON handlers, level parsing, attribute helpers, and
// the progress sampler used when progress cannot be drawn on a terminal.
// Diagnostics are separate from the audit log written by package auditlog.
package logging
