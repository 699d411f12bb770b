package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"galley/internal/catalog"
)

// WriteFile writes content to the target path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteImage writes a tiny stand-in image payload to the target path. The
// bytes are not a valid image; tests only care about file presence and
// round-tripping of content.
func WriteImage(t testing.TB, path string) {
	t.Helper()
	WriteFile(t, path, "\x89PNG-test-image:"+filepath.Base(path))
}

// WriteManifest serializes the given catalog entries to the config's
// manifest path using the `{books: [...]}` document shape the loader expects.
func WriteManifest(t testing.TB, path string, entries []catalog.Entry) {
	t.Helper()

	manifest := struct {
		Books []catalog.Entry `json:"books"`
	}{Books: entries}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	WriteFile(t, path, string(data))
}
