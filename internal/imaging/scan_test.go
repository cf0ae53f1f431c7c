package imaging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListImagesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "c.jpeg", "notes.txt", "clip.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "thumbs"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages() error = %v", err)
	}

	want := []string{"a.jpg", "b.png", "c.jpeg"}
	if len(got) != len(want) {
		t.Fatalf("ListImages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListImages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListImagesEmptyDirectory(t *testing.T) {
	got, err := ListImages(t.TempDir())
	if err != nil {
		t.Fatalf("ListImages() error = %v, empty directory is not an error", err)
	}
	if len(got) != 0 {
		t.Errorf("ListImages() = %v, want empty", got)
	}
}

func TestListImagesMissingDirectory(t *testing.T) {
	_, err := ListImages(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("ListImages() = nil error for missing directory")
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".jpg", true},
		{".jpeg", true},
		{".png", true},
		{".gif", false},
		{".mp4", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.ext); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}
