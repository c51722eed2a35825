// Package archive streams a directory tree as a ZIP file.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrEmptyDir is returned when the directory to archive is missing or empty.
var ErrEmptyDir = errors.New("directory is missing or empty")

// HasEntries reports whether dir exists and contains at least one entry.
func HasEntries(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

// ZipDir writes every regular file below dir into a ZIP on w, named by its
// slash-separated path relative to dir.
func ZipDir(w io.Writer, dir string) error {
	if !HasEntries(dir) {
		return fmt.Errorf("%s: %w", dir, ErrEmptyDir)
	}

	zw := zip.NewWriter(w)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return addFile(zw, path, filepath.ToSlash(rel))
	})
	if err != nil {
		_ = zw.Close()
		return fmt.Errorf("unable to archive %s: %w", dir, err)
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, f)
	return err
}
