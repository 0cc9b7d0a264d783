package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	local := NewLocal(dir, "http://localhost:8080/files/")

	url, err := local.Upload("nominas/ana_2024-06.pdf", []byte("pdf"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "http://localhost:8080/files/nominas/ana_2024-06.pdf" {
		t.Fatalf("unexpected url: %s", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "nominas", "ana_2024-06.pdf")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	if err := local.Delete("nominas/ana_2024-06.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := local.Delete("nominas/ana_2024-06.pdf"); err != nil {
		t.Fatalf("delete of missing file should be a no-op, got %v", err)
	}
}

func TestUploadRejectsTraversal(t *testing.T) {
	local := NewLocal(t.TempDir(), "http://localhost:8080/files")

	if _, err := local.Upload("../outside.pdf", []byte("x")); err == nil {
		t.Fatal("expected traversal path to be rejected")
	}
}
