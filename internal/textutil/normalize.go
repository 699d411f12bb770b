package textutil

import (
	"path/filepath"
	"strings"
)

// noiseTokens are removed from normalized filenames wherever they occur.
// Longest-first so compound tokens are consumed before their substrings.
var noiseTokens = []string{
	"manuscript",
	"version",
	"report",
	"final",
	"draft",
	"book",
	"copy",
}

// Normalize reduces a filename to a comparable key: lowercase, extension
// stripped, non-alphanumerics removed, noise tokens removed. The result of
// normalizing an already-normalized key is the key itself.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimSuffix(s, filepath.Ext(s))
	s = stripNonAlnum(s)
	// Token removal can expose new occurrences ("bobookok" loses its inner
	// "book" and the remnants close up into another), so repeat until stable.
	for {
		next := s
		for _, token := range noiseTokens {
			next = strings.ReplaceAll(next, token, "")
		}
		if next == s {
			break
		}
		s = next
	}
	return s
}

// Core extracts the dominant alphabetic run from a filename: the longest run
// of letters with length >= 3 in the normalized key. When no such run exists
// the normalized key itself is returned.
func Core(name string) string {
	normalized := Normalize(name)
	best := ""
	run := 0
	for i, r := range normalized {
		if r >= 'a' && r <= 'z' {
			run++
			if run >= 3 && run > len(best) {
				best = normalized[i+1-run : i+1]
			}
			continue
		}
		run = 0
	}
	if best == "" {
		return normalized
	}
	return best
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
