package page

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/ivlev/video2scroll/internal/config"
	"github.com/ivlev/video2scroll/internal/frame"
)

func testSet(t *testing.T, n int) frame.Set {
	t.Helper()
	set := make(frame.Set, 0, n)
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 16, 9))
		data, err := frame.EncodeJPEG(img, 0.8)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		set = append(set, frame.Frame{Data: data, Width: 16, Height: 9, Time: float64(i)})
	}
	return set
}

func testBuilder() *Builder {
	return &Builder{
		Options:  config.DefaultOptions(),
		Duration: 12,
		Ready:    true,
	}
}

func TestBuildPageStructure(t *testing.T) {
	set := testSet(t, 3)
	html, err := testBuilder().Build(set)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	s := string(html)

	if !strings.Contains(s, `<canvas id="flipbook" width="16" height="9">`) {
		t.Error("Canvas should be sized from the first frame")
	}
	if got := strings.Count(s, "data:image/jpeg;base64,"); got != 3 {
		t.Errorf("Expected 3 embedded frames, found %d", got)
	}
	if got := strings.Count(s, `class="filler"`); got != config.FillerSections {
		t.Errorf("Expected %d filler sections, found %d", config.FillerSections, got)
	}
	if !strings.Contains(s, "const DEBOUNCE_MS = 50;") {
		t.Error("Debounce constant missing or changed")
	}
	if !strings.Contains(s, "Scroll to scrub through 3 frames. Status: ready.") {
		t.Error("Instructions snapshot missing")
	}
	if !strings.Contains(s, "Math.floor(progress * (TOTAL_FRAMES - 1))") {
		t.Error("Frame mapping formula missing from the page script")
	}
	if strings.Contains(s, `class="share"`) {
		t.Error("Share QR should be absent without a public URL")
	}
}

func TestBuildDefaultCanvasSize(t *testing.T) {
	// No frames at all: canvas falls back to 800x450
	html, err := testBuilder().Build(frame.Set{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.Contains(string(html), `width="800" height="450"`) {
		t.Error("Empty set should fall back to the 800x450 canvas")
	}
}

func TestBuildStatusSnapshot(t *testing.T) {
	b := testBuilder()
	b.Ready = false
	html, err := b.Build(testSet(t, 1))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.Contains(string(html), "Status: loading.") {
		t.Error("Status snapshot should reflect construction-time state")
	}
}

func TestBuildShareQR(t *testing.T) {
	b := testBuilder()
	b.Options.PublicURL = "https://example.com/flipbook"
	html, err := b.Build(testSet(t, 1))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	s := string(html)
	if !strings.Contains(s, `class="share"`) || !strings.Contains(s, "data:image/png;base64,") {
		t.Error("Share QR block missing")
	}
}

func TestBuildStableOutput(t *testing.T) {
	// Rebuilding with identical inputs yields identical bytes
	set := testSet(t, 2)
	a, err := testBuilder().Build(set)
	if err != nil {
		t.Fatal(err)
	}
	b, err := testBuilder().Build(set)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Page output is not stable across rebuilds")
	}
}

func TestBuildThemeClass(t *testing.T) {
	b := testBuilder()
	b.Dark = true
	html, err := b.Build(testSet(t, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), `<body class="dark">`) {
		t.Error("Dark theme class missing")
	}
}
