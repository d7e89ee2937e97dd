// Package listing takes point-in-time snapshots of the regular files directly inside a folder.
package listing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrListing = errors.New("failed to list folder")
)

// Files returns the names of the regular files directly inside dir, in the order os.ReadDir yields them.
// Directories and special entries are skipped. Symlinks count when they resolve to a regular file.
//
// Non-nil returned error wraps [ErrListing].
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrListing, err.Error())
	}

	files := make([]string, 0, len(entries))

	for _, entry := range entries {
		if isRegular(dir, entry) {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}

func isRegular(dir string, entry os.DirEntry) bool {
	mode := entry.Type()

	if mode.IsRegular() {
		return true
	}

	if mode&os.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}
