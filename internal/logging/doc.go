// Package logging configures structured logging for the import engine.
//
// It wraps log/slog with console and JSON handlers, a small set of typed
// attribute helpers, and context-aware logger derivation so components can
// emit correlated log lines without threading field lists through every call.
// Construct loggers through New or NewFromConfig so output format, level, and
// log-file routing stay consistent between the CLI and library code.
package logging
