// Package services defines the shared error taxonomy and context annotations
// used across the import engine.
//
// Sentinel errors classify failures by cause (validation, configuration,
// missing data, transient I/O) so callers can decide whether a failed import
// should surface to the user or be retried. Wrap attaches category and
// operation context to an error while preserving the sentinel for errors.Is
// checks.
//
// Context helpers carry the entity identifier, import category, and request
// correlation id through an import run so log lines from nested components can
// be tied back to the invocation that produced them.
package services
