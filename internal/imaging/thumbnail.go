package imaging

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

// ThumbnailMaxDimension is the maximum dimension (width or height) for
// persisted thumbnails.
const ThumbnailMaxDimension = 300

// Thumbnail downscales the image to fit within ThumbnailMaxDimension.
func Thumbnail(img image.Image) image.Image {
	return Resize(img, ThumbnailMaxDimension)
}

// EncodeThumbnail writes the thumbnail in the format implied by the original
// filename's extension, so thumb_<filename> keeps a truthful extension.
func EncodeThumbnail(w io.Writer, img image.Image, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 85}); err != nil {
			return fmt.Errorf("failed to encode thumbnail: %w", err)
		}
	case ".png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode thumbnail: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format for thumbnail: %s", ext)
	}
	return nil
}
