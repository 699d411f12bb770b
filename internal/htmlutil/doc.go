// Package htmlutil transforms HTML documents around asset relocation.
//
// Inline embeds every referenced raster/vector image as a base64 data URI so
// a report document becomes fully self-contained. Rewrite repoints asset
// references inside relocated fragments at their materialized public URLs.
//
// Both operations scan with regular expressions rather than a real HTML
// parser. That is deliberate: the source documents are authored loosely, and
// a stricter parse would silently drop legitimate references. Unresolvable
// references are left untouched; neither operation mutates its input.
package htmlutil
