// Package images finds the source images of a contact sheet and reads their
// dimensions.
package images

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNoFolder is returned when no source folder was given
	ErrNoFolder = errors.New("no folder selected")
	// ErrNoImages is returned when the folder holds no supported image files
	ErrNoImages = errors.New("no image files found in the selected folder")
)

// Extensions lists the accepted file extensions, lower case with the leading dot
var Extensions = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff", ".bmp"}

// IsImage reports whether path has a supported extension, ignoring case
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// List returns the supported image files directly inside dir, sorted by name.
// Subdirectories are not descended into.
func List(dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrNoFolder
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !IsImage(entry.Name()) {
			slog.Debug("Skipping non-image file", "name", entry.Name())
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoImages, dir)
	}

	sort.Strings(files)
	slog.Debug("Found images", "dir", dir, "count", len(files))

	return files, nil
}
