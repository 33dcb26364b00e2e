package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// Document is the file whose contents are used as filler and then replaced
type Document struct {
	Path string
	text string
	mode os.FileMode
}

// OpenDocument reads the document at path.
// An empty path means there is no active document.
func OpenDocument(path string) (*Document, error) {
	if path == "" {
		return nil, precondition(ErrNoDocument)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to open document: %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return &Document{
		Path: path,
		text: string(data),
		mode: info.Mode().Perm(),
	}, nil
}

// Text returns the document contents as last read or written
func (d *Document) Text() string {
	return d.text
}

// Replace overwrites the whole document with text.
// The new contents are written to a temporary file in the same directory and
// renamed over the original, so a failure leaves the document untouched.
func (d *Document) Replace(text string) error {
	dir := filepath.Dir(d.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.Path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Chmod(tmpName, d.mode); err != nil {
		return fmt.Errorf("failed to set document mode: %w", err)
	}
	if err := os.Rename(tmpName, d.Path); err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}

	d.text = text
	return nil
}
