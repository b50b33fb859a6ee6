package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// imageFormats maps supported file extensions to the short format names the
// model API expects
var imageFormats = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".gif":  "gif",
	".bmp":  "bmp",
	".webp": "webp",
}

// ImageFormat returns the model API format name for a filename, and whether
// the extension is a supported image format.
func ImageFormat(filename string) (string, bool) {
	format, ok := imageFormats[strings.ToLower(filepath.Ext(filename))]
	return format, ok
}

// ListImages returns the eligible image filenames in dir, sorted by name so
// batch order is stable across platforms.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read images directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := ImageFormat(entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}

	// os.ReadDir returns entries sorted by filename already
	return names, nil
}
