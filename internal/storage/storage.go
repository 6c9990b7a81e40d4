// Copyright (c) 2026 Mangabay. All rights reserved.

/*
Package storage persists uploaded images on the local filesystem.

# Overview

Cover images and chapter pages are written under a single upload root
(static/uploads) with one subdirectory per category. Files are stored
under a timestamped, sanitized name and referenced everywhere else in
the system by their public URL path, never by the on-disk location.

The store is deliberately local-disk only. A CDN or object store would
slot in behind the same interface without touching the callers.
*/
package storage

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/pkg/slug"
)

// # Categories

const (
	// CategoryCovers holds manga cover images.
	CategoryCovers = "covers"

	// CategoryPages holds chapter page images.
	CategoryPages = "pages"
)

// timestampLayout prefixes every stored filename so repeated uploads of
// the same source file never collide.
const timestampLayout = "20060102_150405"

// publicBasePath is the URL prefix under which the upload root is served.
const publicBasePath = "/static/uploads"

// allowedExtensions is the image extension allow list. Anything else is
// rejected before a single byte lands on disk.
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

// AllowedFile reports whether name carries an accepted image extension.
func AllowedFile(name string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// SanitizeFilename reduces an arbitrary user-supplied filename to a safe
// ASCII stem plus its lowercased extension. An empty stem after
// sanitization falls back to "file".
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	stem := slug.From(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" {
		stem = "file"
	}
	return stem + ext
}

// FileStore is the local-disk implementation of the upload store.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a store rooted at baseDir (typically ./static/uploads).
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

/*
Save validates, sanitizes, and persists a single uploaded image.

Parameters:
  - category: upload subdirectory, one of the Category constants.
  - originalName: the client-supplied filename, used only for its
    extension and sanitized stem.
  - content: the file body.

Returns:
  - The public URL path of the stored file.
  - VALIDATION_ERROR for a disallowed extension, STORAGE_ERROR on any
    filesystem failure.
*/
func (store *FileStore) Save(category, originalName string, content io.Reader) (string, error) {
	if !AllowedFile(originalName) {
		return "", apperr.ValidationError("File type not allowed. Use png, jpg, jpeg, gif, or webp.")
	}

	name := time.Now().Format(timestampLayout) + "_" + SanitizeFilename(originalName)
	return store.write(category, name, content)
}

// write persists content under category/name and returns the public path.
func (store *FileStore) write(category, name string, content io.Reader) (string, error) {
	dir := filepath.Join(store.baseDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Storage("Could not prepare the upload directory", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", apperr.Storage("Could not create the uploaded file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		return "", apperr.Storage("Could not write the uploaded file", err)
	}

	return path.Join(publicBasePath, category, name), nil
}

// Remove deletes the file behind a public URL path. Removal is best
// effort: a missing file, or a path outside the upload root, is ignored.
func (store *FileStore) Remove(refPath string) {
	rel, ok := strings.CutPrefix(refPath, publicBasePath+"/")
	if !ok {
		return
	}

	local := filepath.Join(store.baseDir, filepath.FromSlash(rel))
	_ = os.Remove(local)
}
