package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.TotalFrames != 60 {
		t.Errorf("TotalFrames = %d, expected 60", opts.TotalFrames)
	}
	if opts.Quality != 0.8 {
		t.Errorf("Quality = %f, expected 0.8", opts.Quality)
	}
	if opts.FrameRate != 0 {
		t.Errorf("FrameRate = %f, expected unset", opts.FrameRate)
	}
}

func TestMerge(t *testing.T) {
	base := DefaultOptions()

	merged := base.Merge(Options{TotalFrames: 30, Title: "Demo"})
	if merged.TotalFrames != 30 {
		t.Errorf("TotalFrames = %d, expected override 30", merged.TotalFrames)
	}
	if merged.Title != "Demo" {
		t.Errorf("Title = %q, expected override", merged.Title)
	}
	// Untouched fields keep their defaults
	if merged.Quality != 0.8 {
		t.Errorf("Quality = %f, expected default 0.8", merged.Quality)
	}

	// Zero values do not override
	same := merged.Merge(Options{})
	if same.TotalFrames != 30 || same.Title != "Demo" {
		t.Errorf("Zero merge changed values: %+v", same)
	}
}

func TestMergeNormalizes(t *testing.T) {
	opts := Options{TotalFrames: -5, Quality: 3}.Merge(Options{})
	if opts.TotalFrames != 1 {
		t.Errorf("TotalFrames = %d, expected floor of 1", opts.TotalFrames)
	}
	if opts.Quality != DefaultQuality {
		t.Errorf("Quality = %f, expected reset to default", opts.Quality)
	}
}

func TestReadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipbook.yaml")
	data := "totalFrames: 24\nquality: 0.6\ntitle: From YAML\nframeRate: 30\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := ReadOptions(path)
	if err != nil {
		t.Fatalf("ReadOptions failed: %v", err)
	}
	if opts.TotalFrames != 24 || opts.Quality != 0.6 || opts.Title != "From YAML" {
		t.Errorf("Unexpected options: %+v", opts)
	}
	if opts.FrameRate != 30 {
		t.Errorf("FrameRate should be accepted even though unused: %f", opts.FrameRate)
	}
}

func TestReadOptionsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	os.WriteFile(path, []byte("totalFrames: [oops"), 0644)

	if _, err := ReadOptions(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}
