package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"galley/internal/assets"
	"galley/internal/config"
)

func newTestMaterializer(t *testing.T) (*assets.Materializer, string) {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.PublicDir = filepath.Join(base, "public")
	cfg.Serving.PublicBasePath = "/assets"
	cfg.Serving.APIBasePath = "/api/assets"
	return assets.New(&cfg, nil), base
}

func TestMaterializeCopiesAndComputesURLs(t *testing.T) {
	m, base := newTestMaterializer(t)
	src := filepath.Join(base, "cover.png")
	if err := os.WriteFile(src, []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	asset, err := m.Materialize(src, "wool", "covers", "cover.png")
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	wantDest := filepath.Join(base, "public", "wool", "covers", "cover.png")
	if asset.DestinationPath != wantDest {
		t.Fatalf("destination = %q, want %q", asset.DestinationPath, wantDest)
	}
	if asset.PublicURL != "/assets/wool/covers/cover.png" {
		t.Fatalf("public URL = %q", asset.PublicURL)
	}
	if asset.APIURL != "/api/assets/wool/covers/cover.png" {
		t.Fatalf("api URL = %q", asset.APIURL)
	}

	data, err := os.ReadFile(wantDest)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("destination content = %q", data)
	}
}

func TestMaterializeIsCopyOncePerProcess(t *testing.T) {
	m, base := newTestMaterializer(t)
	src := filepath.Join(base, "cover.png")
	if err := os.WriteFile(src, []byte("first"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	first, err := m.Materialize(src, "wool", "covers", "cover.png")
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	// Mutating the source must not reach the destination: the dedup set
	// short-circuits the second copy.
	if err := os.WriteFile(src, []byte("second"), 0o644); err != nil {
		t.Fatalf("rewrite source: %v", err)
	}
	second, err := m.Materialize(src, "wool", "covers", "cover.png")
	if err != nil {
		t.Fatalf("Materialize again: %v", err)
	}
	if first.DestinationPath != second.DestinationPath || first.PublicURL != second.PublicURL {
		t.Fatalf("repeated materialization changed identity: %+v vs %+v", first, second)
	}

	data, err := os.ReadFile(first.DestinationPath)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "first" {
		t.Fatalf("destination content = %q, want first copy preserved", data)
	}
}

func TestMaterializeMissingSource(t *testing.T) {
	m, base := newTestMaterializer(t)
	if _, err := m.Materialize(filepath.Join(base, "absent.png"), "wool", "covers", "absent.png"); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestMaterializeSanitizesSegments(t *testing.T) {
	m, base := newTestMaterializer(t)
	src := filepath.Join(base, "cover.png")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	// Manifest-supplied segments must not traverse out of the public tree.
	asset, err := m.Materialize(src, "wo:ol", "co/vers", "cover.png")
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	wantDest := filepath.Join(base, "public", "wo-ol", "co-vers", "cover.png")
	if asset.DestinationPath != wantDest {
		t.Fatalf("destination = %q, want %q", asset.DestinationPath, wantDest)
	}
	if asset.PublicURL != "/assets/wo-ol/co-vers/cover.png" {
		t.Fatalf("public URL = %q", asset.PublicURL)
	}
	if _, err := os.Stat(wantDest); err != nil {
		t.Fatalf("stat destination: %v", err)
	}
}

func TestMaterializeRequiresSegments(t *testing.T) {
	m, base := newTestMaterializer(t)
	src := filepath.Join(base, "cover.png")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if _, err := m.Materialize(src, "", " "); err == nil {
		t.Fatal("expected error for empty segments")
	}
}

func TestMaterializeBytes(t *testing.T) {
	m, base := newTestMaterializer(t)

	asset, err := m.MaterializeBytes([]byte("<html></html>"), "wool", "reports", "report.html")
	if err != nil {
		t.Fatalf("MaterializeBytes: %v", err)
	}
	if asset.PublicURL != "/assets/wool/reports/report.html" {
		t.Fatalf("public URL = %q", asset.PublicURL)
	}

	data, err := os.ReadFile(filepath.Join(base, "public", "wool", "reports", "report.html"))
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Fatalf("content = %q", data)
	}
}
