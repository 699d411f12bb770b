// Package importer orchestrates provisioning of precanned companion content
// onto a submitted manuscript.
//
// An import resolves the submission to a catalog entry (explicit key first,
// filename matching second), then walks the enabled categories in fixed order:
// reports, marketing, covers, landing page. Each category replaces the rows a
// previous import of the same package left behind, so reruns converge on the
// same final state. A missing source asset is logged and skipped at item
// granularity; storage failures propagate and abort the run with earlier
// categories already committed.
//
// Imports targeting the same entity are serialized with a file lock keyed by
// entity id, so concurrent invocations cannot interleave a category's
// delete and insert steps.
package importer
