package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// SupportedExtensions defines the raster formats accepted as candidates.
var SupportedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// IsSupported reports whether the lower-cased extension is a supported format.
func IsSupported(ext string) bool {
	_, ok := SupportedExtensions[ext]
	return ok
}

// ListImages returns the filenames of supported image files directly inside
// dir, sorted alphabetically. An empty result is not an error.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !IsSupported(ext) {
			log.Debug().Str("file", entry.Name()).Msg("Skipping unsupported file type")
			continue
		}
		files = append(files, entry.Name())
	}

	sort.Strings(files)

	log.Info().
		Int("total_images", len(files)).
		Str("directory", dir).
		Msg("Directory scan complete")

	return files, nil
}
