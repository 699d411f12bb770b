package htmlutil

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"log/slog"

	"galley/internal/logging"
)

// inlineRefPattern matches image references in src/href attributes and CSS
// url() values, including background-image declarations, for the inlineable
// extensions.
var inlineRefPattern = regexp.MustCompile(
	`(?i)(?:src|href)\s*=\s*["']([^"']+\.(?:jpe?g|png|gif|webp|svg))["']` +
		`|url\(\s*["']?([^"')]+\.(?:jpe?g|png|gif|webp|svg))["']?\s*\)`)

// mimeTypes maps image extensions to MIME types. Anything unlisted is served
// as JPEG, matching the historical behavior of the report generator.
var mimeTypes = map[string]string{
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// Inline rewrites html so that every resolvable image reference becomes an
// embedded base64 data URI. documentPath locates the document on disk; its
// directory anchors relative reference resolution. References that cannot be
// resolved are left untouched. The input string is never mutated.
func Inline(documentPath, html string, logger *slog.Logger) string {
	if logger == nil {
		logger = logging.NewNop()
	}
	docDir := filepath.Dir(documentPath)

	result := html
	for _, ref := range distinctImageRefs(html) {
		if isAbsoluteRef(ref) {
			continue
		}
		resolved := resolveImagePath(docDir, ref)
		if resolved == "" {
			logger.Debug("image reference left as-is",
				logging.String("document", documentPath),
				logging.String("ref", ref))
			continue
		}
		data, err := os.ReadFile(resolved)
		if err != nil {
			logger.Warn("image read failed during inlining",
				logging.String("path", resolved),
				logging.Error(err))
			continue
		}
		uri := "data:" + mimeTypeFor(resolved) + ";base64," + base64.StdEncoding.EncodeToString(data)
		result = substituteRef(result, ref, uri)
	}
	return result
}

// distinctImageRefs extracts every distinct image reference in appearance
// order. A reference repeated across contexts is processed once.
func distinctImageRefs(html string) []string {
	seen := make(map[string]struct{})
	var refs []string
	for _, match := range inlineRefPattern.FindAllStringSubmatch(html, -1) {
		ref := match[1]
		if ref == "" {
			ref = match[2]
		}
		if ref == "" {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	return refs
}

func isAbsoluteRef(ref string) bool {
	lowered := strings.ToLower(ref)
	return strings.HasPrefix(lowered, "http://") ||
		strings.HasPrefix(lowered, "https://") ||
		strings.HasPrefix(lowered, "data:")
}

// resolveImagePath tries the document's directory, its parent, then the
// immediate subdirectories of each. The first existing path wins.
func resolveImagePath(docDir, ref string) string {
	parent := filepath.Dir(docDir)
	roots := []string{docDir, parent}
	roots = append(roots, immediateSubdirs(docDir)...)
	roots = append(roots, immediateSubdirs(parent)...)

	for _, root := range roots {
		candidate := filepath.Join(root, filepath.FromSlash(ref))
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

func immediateSubdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
		}
	}
	return subdirs
}

func mimeTypeFor(path string) string {
	if mime, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mime
	}
	return "image/jpeg"
}

// substituteRef replaces every syntactic occurrence of ref across the three
// production contexts (src attribute, href attribute, CSS url) with the
// replacement value, matching case-insensitively.
func substituteRef(html, ref, replacement string) string {
	quoted := regexp.QuoteMeta(ref)
	attrPattern := regexp.MustCompile(`(?i)((?:src|href)\s*=\s*["'])` + quoted + `(["'])`)
	cssPattern := regexp.MustCompile(`(?i)(url\(\s*["']?)` + quoted + `(["']?\s*\))`)

	html = attrPattern.ReplaceAllString(html, "${1}"+replacement+"${2}")
	return cssPattern.ReplaceAllString(html, "${1}"+replacement+"${2}")
}
