package htmlutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestInlineEmbedsImageAsDataURI(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "cover.png", "fake-png")
	doc := writeDoc(t, dir, "report.html", `<img src="cover.png"><a href="cover.png">cover</a>`)

	html, err := os.ReadFile(doc)
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	out := Inline(doc, string(html), nil)

	if !strings.Contains(out, "data:image/png;base64,") {
		t.Fatalf("expected data URI in output, got %q", out)
	}
	if strings.Contains(out, `"cover.png"`) {
		t.Fatalf("expected literal reference to be gone, got %q", out)
	}
	// Both the src and href occurrence must be substituted.
	if strings.Count(out, "data:image/png;base64,") != 2 {
		t.Fatalf("expected both occurrences substituted, got %q", out)
	}
}

func TestInlineCSSBackgroundURL(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "bg.jpg", "fake-jpg")
	doc := writeDoc(t, dir, "page.html",
		`<div style="background-image:url(bg.jpg)"></div><style>.hero{background:url('bg.jpg')}</style>`)

	out := Inline(doc, `<div style="background-image:url(bg.jpg)"></div><style>.hero{background:url('bg.jpg')}</style>`, nil)

	if strings.Count(out, "data:image/jpeg;base64,") != 2 {
		t.Fatalf("expected both url() contexts substituted, got %q", out)
	}
	if strings.Contains(out, "url(bg.jpg)") || strings.Contains(out, "url('bg.jpg')") {
		t.Fatalf("expected literal url() references to be gone, got %q", out)
	}
}

func TestInlineResolvesFromParentAndSubdirs(t *testing.T) {
	base := t.TempDir()
	writeDoc(t, base, "shared.gif", "gif-in-parent")
	writeDoc(t, filepath.Join(base, "doc", "images"), "nested.webp", "webp-in-subdir")
	doc := writeDoc(t, filepath.Join(base, "doc"), "index.html",
		`<img src="shared.gif"><img src="nested.webp">`)

	out := Inline(doc, `<img src="shared.gif"><img src="nested.webp">`, nil)

	if !strings.Contains(out, "data:image/gif;base64,") {
		t.Fatalf("expected parent-dir gif inlined, got %q", out)
	}
	if !strings.Contains(out, "data:image/webp;base64,") {
		t.Fatalf("expected subdir webp inlined, got %q", out)
	}
}

func TestInlineLeavesUnresolvableAndAbsoluteRefs(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "page.html", "")
	input := `<img src="missing.png"><img src="https://cdn.example.com/x.png"><img src="data:image/png;base64,AAAA">`

	out := Inline(doc, input, nil)

	if out != input {
		t.Fatalf("expected input unchanged, got %q", out)
	}
}

func TestInlineSVGMimeType(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "logo.svg", "<svg/>")
	doc := writeDoc(t, dir, "page.html", "")

	out := Inline(doc, `<img src="logo.svg">`, nil)

	if !strings.Contains(out, "data:image/svg+xml;base64,") {
		t.Fatalf("expected svg MIME type, got %q", out)
	}
}

func TestInlineCaseInsensitiveSubstitution(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "Cover.PNG", "png-bytes")
	doc := writeDoc(t, dir, "page.html", "")

	out := Inline(doc, `<IMG SRC="Cover.PNG">`, nil)

	if !strings.Contains(out, "data:image/png;base64,") {
		t.Fatalf("expected uppercase attribute handled, got %q", out)
	}
}

func TestDistinctImageRefsDeduplicates(t *testing.T) {
	refs := distinctImageRefs(`<img src="a.png"><img src="a.png"><img src="b.jpg">`)
	if len(refs) != 2 || refs[0] != "a.png" || refs[1] != "b.jpg" {
		t.Fatalf("refs = %v", refs)
	}
}
