// Package catalog loads the static manifest of precanned content packages and
// resolves submitted manuscript filenames against it.
//
// The manifest is a JSON document ({"books": [...]}) describing, per known
// work, the alias filenames it answers to and the report, preview, video,
// cover, and landing-page assets bundled with it. The Service memoizes the
// parsed manifest for the life of the process and exposes an explicit Reload
// for deployments that edit the manifest in place.
//
// Resolution is first-match in manifest order: the first entry with any alias
// matching the submitted filename wins. This is deliberately different from
// the score-maximizing cover search in package coverart; call sites depend on
// the distinct semantics.
package catalog
