package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeTempFile creates name in a fresh temp dir and returns its path
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o640); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestOpenDocument(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "hello\nworld\n")

	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("OpenDocument error: %v", err)
	}
	if doc.Text() != "hello\nworld\n" {
		t.Errorf("Text() = %q", doc.Text())
	}
}

func TestOpenDocumentErrors(t *testing.T) {
	_, err := OpenDocument("")
	if !errors.Is(err, ErrNoDocument) || !IsPrecondition(err) {
		t.Errorf("OpenDocument(\"\") error = %v, want precondition ErrNoDocument", err)
	}

	if _, err := OpenDocument(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("OpenDocument(missing) succeeded")
	}

	if _, err := OpenDocument(t.TempDir()); err == nil {
		t.Errorf("OpenDocument(dir) succeeded")
	}
}

func TestDocumentReplace(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "old contents")
	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("OpenDocument error: %v", err)
	}

	if err := doc.Replace("a ab\n b  "); err != nil {
		t.Fatalf("Replace error: %v", err)
	}

	if got := readFile(t, path); got != "a ab\n b  " {
		t.Errorf("file contents = %q", got)
	}
	if doc.Text() != "a ab\n b  " {
		t.Errorf("Text() after Replace = %q", doc.Text())
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("mode = %v, want 0640", info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries after Replace, want 1 (temp file left behind?)", len(entries))
	}
}

func TestDocumentReplaceFailureKeepsOriginal(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "keep me")
	doc, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("OpenDocument error: %v", err)
	}

	// Point the document into a directory that does not exist
	doc.Path = filepath.Join(filepath.Dir(path), "gone", "notes.txt")
	if err := doc.Replace("new"); err == nil {
		t.Fatalf("Replace into missing directory succeeded")
	}
	if doc.Text() != "keep me" {
		t.Errorf("Text() after failed Replace = %q", doc.Text())
	}
	if got := readFile(t, path); got != "keep me" {
		t.Errorf("original file = %q", got)
	}
}
