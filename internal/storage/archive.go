// Copyright (c) 2026 Mangabay. All rights reserved.

package storage

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/pkg/natsort"
)

/*
IngestArchive extracts a ZIP of page images and feeds them to the caller
in reading order.

# Pipeline

 1. The archive is unpacked into a private temp directory.
 2. The extracted tree is walked, collecting files with an allowed
    image extension; everything else is ignored.
 3. Candidates are sorted in natural order by filename, so page2.png
    lands before page10.png.
 4. Each file is moved into the store under
    {timestamp}_{sequence}_{sanitized original name}, and ingest is
    invoked with the 1-based sequence number and the stored public path.

If ingest (or a file move) fails, ingestion stops at that file. Pages
already handed to the caller stay handed over; there is no rollback of
prior iterations. The temp directory is always cleaned up.

Returns the number of pages successfully ingested.
*/
func (store *FileStore) IngestArchive(category string, archive io.ReaderAt, size int64, ingest func(seq int, refPath string) error) (int, error) {
	reader, err := zip.NewReader(archive, size)
	if err != nil {
		return 0, apperr.ValidationError("Invalid or corrupted ZIP archive")
	}

	tempDir, err := os.MkdirTemp("", "mangabay-archive-")
	if err != nil {
		return 0, apperr.Storage("Could not create a temporary extraction directory", err)
	}
	defer os.RemoveAll(tempDir)

	if err := extractAll(reader, tempDir); err != nil {
		return 0, err
	}

	files, err := collectImages(tempDir)
	if err != nil {
		return 0, apperr.Storage("Could not scan the extracted archive", err)
	}
	if len(files) == 0 {
		return 0, apperr.ValidationError("The archive contains no image files")
	}

	natsort.Sort(files)

	prefix := time.Now().Format(timestampLayout)
	for idx, rel := range files {
		seq := idx + 1
		name := fmt.Sprintf("%s_%d_%s", prefix, seq, SanitizeFilename(rel))

		src, err := os.Open(filepath.Join(tempDir, filepath.FromSlash(rel)))
		if err != nil {
			return idx, apperr.Storage("Could not read an extracted page", err)
		}

		refPath, err := store.write(category, name, src)
		src.Close()
		if err != nil {
			return idx, err
		}

		if err := ingest(seq, refPath); err != nil {
			return idx, err
		}
	}

	return len(files), nil
}

// extractAll unpacks every regular file in the archive into destDir.
// Entries whose names would escape destDir are skipped.
func extractAll(reader *zip.Reader, destDir string) error {
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		rel := filepath.Clean(filepath.FromSlash(entry.Name))
		if rel == "." || filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
			continue
		}

		dst := filepath.Join(destDir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return apperr.Storage("Could not extract the archive", err)
		}

		if err := extractEntry(entry, dst); err != nil {
			return err
		}
	}
	return nil
}

// extractEntry copies one archive entry to dst.
func extractEntry(entry *zip.File, dst string) error {
	src, err := entry.Open()
	if err != nil {
		return apperr.Storage("Could not extract the archive", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return apperr.Storage("Could not extract the archive", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return apperr.Storage("Could not extract the archive", err)
	}
	return nil
}

// collectImages walks root and returns the slash-separated relative paths
// of all files with an allowed image extension.
func collectImages(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !AllowedFile(p) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	return files, err
}
