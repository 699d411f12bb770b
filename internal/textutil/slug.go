package textutil

import (
	"path/filepath"
	"strings"
)

// Slugify converts input to a lowercase alphanumeric slug with hyphens.
// Spaces, underscores, periods, and hyphens become hyphens. Other characters
// are dropped. maxLen of 0 means unlimited length.
func Slugify(input string, maxLen int) string {
	input = strings.ToLower(strings.TrimSpace(input))
	var slug strings.Builder
	lastHyphen := false
	for _, r := range input {
		if maxLen > 0 && slug.Len() >= maxLen {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			slug.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_' || r == '.':
			if !lastHyphen {
				slug.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(slug.String(), "-")
}

// SlugifyFileName slugifies a filename's stem while preserving its extension,
// producing a deterministic, servable destination name.
func SlugifyFileName(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	slug := Slugify(stem, 0)
	if slug == "" {
		slug = "asset"
	}
	return slug + strings.ToLower(ext)
}

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}
