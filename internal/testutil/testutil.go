// Package testutil provides test helpers for CLI and parser tests.
package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// BuildArchive writes a zip archive with the given entries into dir and
// returns its path. Entry order follows map iteration; tests that care
// about entry order should build their own archive.
func BuildArchive(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create archive %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for entryName, content := range entries {
		w, err := zw.Create(entryName)
		if err != nil {
			t.Fatalf("failed to create archive entry %s: %v", entryName, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write archive entry %s: %v", entryName, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finalize archive %s: %v", path, err)
	}
	return path
}

// BuildModuleArchive writes an omod archive whose config.xml entry holds
// the given descriptor content.
func BuildModuleArchive(t *testing.T, dir, name, configXML string) string {
	t.Helper()
	return BuildArchive(t, dir, name, map[string]string{"config.xml": configXML})
}
