package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFileVerifiedMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFileVerified(filepath.Join(dir, "absent"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	if err := os.WriteFile(src, []byte("verified payload"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatalf("CopyFileVerified: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "verified payload" {
		t.Fatalf("destination content = %q", data)
	}
}

func TestWriteFileEnsuredCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "c.txt")
	if err := WriteFileEnsured(path, []byte("x")); err != nil {
		t.Fatalf("WriteFileEnsured: %v", err)
	}
	if !Exists(path) {
		t.Fatal("expected file to exist")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(filepath.Join(dir, "nope")) {
		t.Fatal("expected missing file to report false")
	}
	if Exists(dir) {
		t.Fatal("expected directory to report false")
	}
}
