// Package assets copies source files into the servable public tree and hands
// back stable URLs for them.
//
// Destination paths are a deterministic function of the path segments the
// caller supplies (package key, category, slugified source name), so repeated
// imports of the same source resolve to the same URL. A mutex-guarded
// in-process dedup set makes each destination a copy-once operation per
// process run; a fresh process re-copies over whatever is already on disk.
//
// Every materialized asset is addressable two ways: through the static public
// path and through the API file route. Callers pick whichever form the
// consuming surface needs.
package assets
