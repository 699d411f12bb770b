package coverart_test

import (
	"os"
	"path/filepath"
	"testing"

	"galley/internal/coverart"
	"galley/internal/textutil"
)

func writeUploads(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0xFF}, 0o644); err != nil {
			t.Fatalf("write upload %s: %v", name, err)
		}
	}
	return dir
}

func TestResolvePicksBestScore(t *testing.T) {
	dir := writeUploads(t, "wool_cover.jpg", "beachread.png")
	finder := coverart.NewFinder(dir, nil)

	cover, score, err := finder.Resolve("Wool.pdf")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cover != "wool_cover.jpg" {
		t.Fatalf("cover = %q, want wool_cover.jpg", cover)
	}
	if score != textutil.ScoreContainment {
		t.Fatalf("score = %d, want %d", score, textutil.ScoreContainment)
	}
}

func TestResolveExactBeatsContainment(t *testing.T) {
	dir := writeUploads(t, "wool_cover.jpg", "wool.png")
	finder := coverart.NewFinder(dir, nil)

	cover, score, err := finder.Resolve("Wool.pdf")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cover != "wool.png" {
		t.Fatalf("cover = %q, want wool.png", cover)
	}
	if score != textutil.ScoreExact {
		t.Fatalf("score = %d, want %d", score, textutil.ScoreExact)
	}
}

func TestResolveTieKeepsListingOrder(t *testing.T) {
	// Both candidates contain the normalized name; the lexicographically
	// earlier one must win.
	dir := writeUploads(t, "wool_front.jpg", "wool_back.jpg")
	finder := coverart.NewFinder(dir, nil)

	cover, _, err := finder.Resolve("Wool.pdf")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cover != "wool_back.jpg" {
		t.Fatalf("cover = %q, want wool_back.jpg (first in sorted order)", cover)
	}
}

func TestResolveIgnoresNonImages(t *testing.T) {
	dir := writeUploads(t, "wool.txt", "wool.svg")
	finder := coverart.NewFinder(dir, nil)

	cover, score, err := finder.Resolve("Wool.pdf")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cover != "" || score != 0 {
		t.Fatalf("expected no candidate, got %q (%d)", cover, score)
	}
}

func TestResolveMissingDirIsNotAnError(t *testing.T) {
	finder := coverart.NewFinder(filepath.Join(t.TempDir(), "absent"), nil)
	cover, score, err := finder.Resolve("Wool.pdf")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cover != "" || score != 0 {
		t.Fatalf("expected empty result, got %q (%d)", cover, score)
	}
}

func TestListingMemoizedUntilReload(t *testing.T) {
	dir := writeUploads(t, "beachread.png")
	finder := coverart.NewFinder(dir, nil)

	if cover, _, _ := finder.Resolve("Wool.pdf"); cover != "" {
		t.Fatalf("unexpected early match %q", cover)
	}

	if err := os.WriteFile(filepath.Join(dir, "wool.jpg"), []byte{0xFF}, 0o644); err != nil {
		t.Fatalf("write upload: %v", err)
	}

	// Still served from the cached listing.
	if cover, _, _ := finder.Resolve("Wool.pdf"); cover != "" {
		t.Fatalf("expected memoized listing, got %q", cover)
	}

	finder.Reload()
	cover, _, err := finder.Resolve("Wool.pdf")
	if err != nil {
		t.Fatalf("Resolve after reload: %v", err)
	}
	if cover != "wool.jpg" {
		t.Fatalf("cover after reload = %q, want wool.jpg", cover)
	}
}
