package source

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestImageDirSource(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), 40, 20)
	writeTestPNG(t, filepath.Join(dir, "b.png"), 40, 20)
	writeTestPNG(t, filepath.Join(dir, "c.png"), 40, 20)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644)

	src, err := NewImageDirSource(dir, 2.0)
	if err != nil {
		t.Fatalf("NewImageDirSource failed: %v", err)
	}
	defer src.Close()

	if got := src.Duration(); got != 6 {
		t.Errorf("Duration = %f, expected 6 (3 images x 2s)", got)
	}

	w, h := src.Dimensions()
	if w != 40 || h != 20 {
		t.Errorf("Dimensions = %dx%d, expected 40x20", w, h)
	}

	// Timestamps map onto the synthetic page timeline, clamped at the ends
	for _, tt := range []float64{0, 2.5, 5.9, 100} {
		img, err := src.CaptureFrame(context.Background(), tt)
		if err != nil {
			t.Errorf("CaptureFrame(%.1f) failed: %v", tt, err)
			continue
		}
		if img.Bounds().Dx() != 40 {
			t.Errorf("CaptureFrame(%.1f) bounds = %v", tt, img.Bounds())
		}
	}
}

func TestImageDirSourceEmpty(t *testing.T) {
	if _, err := NewImageDirSource(t.TempDir(), 1.0); err == nil {
		t.Error("Expected an error for a directory without images")
	}
}

func TestOpenDispatch(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), 8, 8)

	src, err := Open(dir, 1.0)
	if err != nil {
		t.Fatalf("Open(dir) failed: %v", err)
	}
	defer src.Close()

	if _, ok := src.(*ImageDirSource); !ok {
		t.Errorf("Open(dir) returned %T, expected *ImageDirSource", src)
	}
}

func TestOpenMissingPath(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.mp4"), 1.0); err == nil {
		t.Error("Expected an error for a missing input")
	}
}
