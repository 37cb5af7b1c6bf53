package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/video2scroll/internal/config"
	"github.com/ivlev/video2scroll/internal/manifest"
)

func TestRunWithoutSource(t *testing.T) {
	// Whole-media load failure: the project still produces a full page
	// and manifest, built entirely from placeholders.
	dir := t.TempDir()
	opts := config.DefaultOptions()
	opts.TotalFrames = 3

	cfg := &config.Config{
		InputPath:    "missing.mp4",
		OutputPage:   filepath.Join(dir, "flipbook.html"),
		ManifestPath: filepath.Join(dir, "flipbook.manifest.yaml"),
		Options:      opts,
		BuildVersion: "test",
	}

	project := NewFlipbookProject(cfg, nil)
	if err := project.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	html, err := os.ReadFile(cfg.OutputPage)
	if err != nil {
		t.Fatalf("Page was not written: %v", err)
	}
	s := string(html)
	if got := strings.Count(s, "data:image/jpeg;base64,"); got != 3 {
		t.Errorf("Expected 3 embedded frames, found %d", got)
	}
	if !strings.Contains(s, "drawFrame(0);") {
		t.Error("Initial draw of frame 0 missing")
	}

	m, err := manifest.Read(cfg.ManifestPath)
	if err != nil {
		t.Fatalf("Manifest was not written: %v", err)
	}
	if len(m.Frames) != 3 {
		t.Fatalf("Manifest has %d frames, expected 3", len(m.Frames))
	}
	for _, f := range m.Frames {
		if !f.Placeholder {
			t.Errorf("Frame %d should be a placeholder", f.Index)
		}
	}
	if m.Duration != config.FallbackDuration {
		t.Errorf("Duration = %f, expected fallback %f", m.Duration, config.FallbackDuration)
	}
}

func TestBuildResult(t *testing.T) {
	opts := config.DefaultOptions()
	opts.TotalFrames = 2

	project := NewFlipbookProject(&config.Config{Options: opts}, nil)
	result, err := project.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if result.Set.Len() != 2 {
		t.Errorf("Set has %d frames, expected 2", result.Set.Len())
	}
	if len(result.Page) == 0 {
		t.Error("Page is empty")
	}
}
