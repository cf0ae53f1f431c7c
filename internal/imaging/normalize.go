// Package imaging provides candidate image loading, normalization for model
// input, directory scanning, and thumbnail generation.
package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// ModelInputMaxDimension bounds normalized images fed to the vision providers.
const ModelInputMaxDimension = 224

// ReadError reports an input image that is missing, unreadable, or not a
// supported raster format. It is scoped to one candidate; the dispatcher
// excludes the image and keeps the batch alive.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read image %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Candidate is one batch item: the source file plus its normalized in-memory
// image. Owned exclusively by the per-image task that created it.
type Candidate struct {
	Filename string
	Path     string
	Image    image.Image
}

// Normalize loads an image file and produces the canonical model input:
// 3-channel color, downscaled with high-quality resampling so neither
// dimension exceeds ModelInputMaxDimension.
func Normalize(path string) (*Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	normalized := Resize(toRGB(img), ModelInputMaxDimension)

	bounds := normalized.Bounds()
	log.Debug().
		Str("file", filepath.Base(path)).
		Str("format", format).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Msg("Image normalized")

	return &Candidate{
		Filename: filepath.Base(path),
		Path:     path,
		Image:    normalized,
	}, nil
}

// toRGB redraws the image onto an opaque RGBA canvas, discarding alpha and
// collapsing paletted or grayscale sources into the canonical color model.
func toRGB(img image.Image) image.Image {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}

// Resize scales the image down with CatmullRom resampling so neither
// dimension exceeds maxDimension, preserving aspect ratio. Images already
// within the bound are returned unchanged.
func Resize(img image.Image, maxDimension int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	newWidth, newHeight := FitDimensions(width, height, maxDimension)
	if newWidth == width && newHeight == height {
		return img
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
	return resized
}

// FitDimensions calculates dimensions within maxDimension maintaining aspect ratio.
func FitDimensions(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}

	if width > height {
		newWidth := maxDimension
		newHeight := int(float64(height) * float64(maxDimension) / float64(width))
		if newHeight < 1 {
			newHeight = 1
		}
		return newWidth, newHeight
	}

	newHeight := maxDimension
	newWidth := int(float64(width) * float64(maxDimension) / float64(height))
	if newWidth < 1 {
		newWidth = 1
	}
	return newWidth, newHeight
}
