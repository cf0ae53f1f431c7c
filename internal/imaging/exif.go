package imaging

import (
	"fmt"
	"os"
	"strings"

	"github.com/evanoberholster/imagemeta"
	"github.com/rs/zerolog/log"
)

// CaptureContext extracts a short human-readable capture summary (date taken,
// camera) from the image's EXIF block for use in enrichment prompts. Missing
// or unparseable metadata is not an error; the returned string is simply empty.
func CaptureContext(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	exifData, err := imagemeta.Decode(f)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("No EXIF metadata available")
		return ""
	}

	var parts []string

	// Prefer the original capture time over later file timestamps.
	switch {
	case !exifData.DateTimeOriginal().IsZero():
		parts = append(parts, "taken on "+exifData.DateTimeOriginal().Format("January 2, 2006"))
	case !exifData.CreateDate().IsZero():
		parts = append(parts, "taken on "+exifData.CreateDate().Format("January 2, 2006"))
	}

	camera := strings.TrimSpace(strings.TrimSpace(exifData.Make) + " " + strings.TrimSpace(exifData.Model))
	if camera != "" {
		parts = append(parts, fmt.Sprintf("shot with %s", camera))
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ")
}
