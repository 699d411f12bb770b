// Package coverart finds the best standalone cover image for a submitted
// manuscript filename.
//
// Candidates come from the uploads directory of the source asset tree
// (jpg/jpeg/png/gif/webp). The directory listing is sorted for determinism,
// memoized for the life of the process, and refreshed only through an explicit
// Reload. Selection is score-maximizing (unlike catalog resolution, which is
// first-match): every candidate is rated against the submitted name and the
// highest score wins, with ties broken by listing order.
package coverart
