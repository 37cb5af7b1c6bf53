package placeholder

import (
	"bytes"
	"testing"

	"github.com/ivlev/video2scroll/internal/config"
)

func TestGenerateDimensions(t *testing.T) {
	img := Generate(0, 60, 120)
	b := img.Bounds()
	if b.Dx() != config.DefaultWidth || b.Dy() != config.DefaultHeight {
		t.Errorf("Expected %dx%d, got %dx%d", config.DefaultWidth, config.DefaultHeight, b.Dx(), b.Dy())
	}
}

func TestGenerateDeterministic(t *testing.T) {
	// Same (index, total, duration) must produce identical pixels
	a := Generate(5, 60, 120)
	pixA := make([]byte, len(a.Pix))
	copy(pixA, a.Pix)

	b := Generate(5, 60, 120)
	if !bytes.Equal(pixA, b.Pix) {
		t.Error("Placeholder generation is not deterministic for identical inputs")
	}

	c := Generate(6, 60, 120)
	if bytes.Equal(pixA, c.Pix) {
		t.Error("Different indices should produce different gradients")
	}
}

func TestHue(t *testing.T) {
	tests := []struct {
		index, total int
		expected     float64
	}{
		{0, 60, 0},
		{30, 60, 180},
		{45, 60, 270},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := Hue(tt.index, tt.total); got != tt.expected {
			t.Errorf("Hue(%d, %d) = %f, expected %f", tt.index, tt.total, got, tt.expected)
		}
	}
}

func TestHSL(t *testing.T) {
	// Saturation 0.7, lightness 0.5: chroma 0.7, offset 0.15
	red := HSL(0, 0.7, 0.5)
	if red.R != 217 || red.G != 38 || red.B != 38 {
		t.Errorf("HSL(0, 0.7, 0.5) = %v, expected {217 38 38 255}", red)
	}

	green := HSL(120, 0.7, 0.5)
	if green.G != 217 || green.R != 38 || green.B != 38 {
		t.Errorf("HSL(120, 0.7, 0.5) = %v, expected {38 217 38 255}", green)
	}

	// Hue wraps around
	wrapped := HSL(360, 0.7, 0.5)
	if wrapped != red {
		t.Errorf("HSL(360) = %v, expected same as HSL(0) = %v", wrapped, red)
	}
}

func TestGradientEdges(t *testing.T) {
	img := Generate(0, 60, 120)

	// Left edge of frame 0 is the hue-0 stop, right edge is hue-60
	left := img.RGBAAt(0, 0)
	if want := HSL(0, 0.7, 0.5); left != want {
		t.Errorf("Left edge = %v, expected %v", left, want)
	}

	right := img.RGBAAt(img.Rect.Dx()-1, 0)
	if want := HSL(60, 0.7, 0.5); right != want {
		t.Errorf("Right edge = %v, expected %v", right, want)
	}
}
