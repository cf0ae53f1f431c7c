package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writePNG writes a width x height test image and returns its path.
func writePNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func TestNormalizeBoundsDimensions(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "large.png", 640, 480)

	c, err := Normalize(path)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	bounds := c.Image.Bounds()
	if bounds.Dx() > ModelInputMaxDimension || bounds.Dy() > ModelInputMaxDimension {
		t.Errorf("normalized image is %dx%d, want both dimensions <= %d",
			bounds.Dx(), bounds.Dy(), ModelInputMaxDimension)
	}
	if c.Filename != "large.png" {
		t.Errorf("Filename = %q, want %q", c.Filename, "large.png")
	}
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "small.png", 100, 60)

	c, err := Normalize(path)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	bounds := c.Image.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 60 {
		t.Errorf("normalized image is %dx%d, want 100x60 unchanged", bounds.Dx(), bounds.Dy())
	}
}

func TestNormalizeMissingFile(t *testing.T) {
	_, err := Normalize(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("Normalize() = nil error, want ReadError for missing file")
	}

	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Errorf("Normalize() error = %T, want *ReadError", err)
	}
}

func TestNormalizeCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(path, []byte("not an image at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Normalize(path)
	if err == nil {
		t.Fatal("Normalize() = nil error, want ReadError for corrupt file")
	}

	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Errorf("Normalize() error = %T, want *ReadError", err)
	}
}

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h, max  int
		wantW      int
		wantH      int
	}{
		{"already fits", 200, 100, 300, 200, 100},
		{"wide", 600, 300, 300, 300, 150},
		{"tall", 300, 600, 300, 150, 300},
		{"square", 500, 500, 224, 224, 224},
		{"extreme aspect", 10000, 10, 224, 224, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotW, gotH := FitDimensions(tt.w, tt.h, tt.max)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("FitDimensions(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.w, tt.h, tt.max, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}
