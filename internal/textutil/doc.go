// Package textutil turns raw manuscript filenames into comparable keys and
// decides whether two filenames refer to the same work.
//
// The primary use cases are:
//   - Normalizing a filename to a noise-free alphanumeric key
//   - Extracting a "core" token (the longest alphabetic run) for loose matching
//   - Binary matching for catalog resolution and tiered scoring for picking
//     the best cover image among many candidates
//   - Slugifying names for destination paths and landing-page URLs
//
// Matching is filename-string-only. Normalization lowercases the name, drops
// the extension, strips every non-alphanumeric character, and removes common
// noise tokens ("final", "draft", "copy", ...) until none remain, which keeps
// the operation idempotent.
package textutil
