package htmlutil

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// rewriteAttrPattern matches values of the attributes eligible for reference
// rewriting after relocation.
var rewriteAttrPattern = regexp.MustCompile(`(?i)\b(src|poster|href|data-src)(\s*=\s*)(["'])([^"']*)(["'])`)

// Rewrite repoints asset references inside html at their materialized URLs.
// replacements maps an original reference (as the manifest declared it) to the
// URL that now serves it.
//
// Two passes run over the allowlisted attributes (src, poster, href,
// data-src). The first replaces values exactly equal to a map key. The second
// replaces relative values whose basename equals the basename of some key,
// which recovers references authored with a different folder prefix than the
// manifest's source path. Map keys are visited in sorted order so basename
// collisions resolve deterministically.
func Rewrite(html string, replacements map[string]string) string {
	if len(replacements) == 0 {
		return html
	}

	keys := make([]string, 0, len(replacements))
	for key := range replacements {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	byBasename := make(map[string]string, len(keys))
	for _, key := range keys {
		base := path.Base(strings.ReplaceAll(key, "\\", "/"))
		if _, taken := byBasename[base]; !taken {
			byBasename[base] = replacements[key]
		}
	}

	// Pass 1: exact matches.
	html = rewriteAttrPattern.ReplaceAllStringFunc(html, func(match string) string {
		parts := rewriteAttrPattern.FindStringSubmatch(match)
		if target, ok := replacements[parts[4]]; ok {
			return parts[1] + parts[2] + parts[3] + target + parts[5]
		}
		return match
	})

	// Pass 2: basename matches for relative references.
	html = rewriteAttrPattern.ReplaceAllStringFunc(html, func(match string) string {
		parts := rewriteAttrPattern.FindStringSubmatch(match)
		value := parts[4]
		if !isRelativeRef(value) {
			return match
		}
		base := path.Base(strings.ReplaceAll(value, "\\", "/"))
		if target, ok := byBasename[base]; ok {
			return parts[1] + parts[2] + parts[3] + target + parts[5]
		}
		return match
	})

	return html
}

// isRelativeRef reports whether an attribute value is a relative path still in
// need of rewriting: not an absolute URL, not a data URI, and not already a
// rooted public or API path.
func isRelativeRef(value string) bool {
	if value == "" {
		return false
	}
	lowered := strings.ToLower(value)
	if strings.HasPrefix(lowered, "http://") || strings.HasPrefix(lowered, "https://") {
		return false
	}
	if strings.HasPrefix(lowered, "data:") {
		return false
	}
	if strings.HasPrefix(value, "/") {
		return false
	}
	return true
}
