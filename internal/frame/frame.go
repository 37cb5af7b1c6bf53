package frame

import (
	"bytes"
	"image"
	"image/jpeg"
)

// Frame is a single sampled still: JPEG bytes plus the metadata the
// presenter needs. Immutable once created.
type Frame struct {
	Data        []byte
	Width       int
	Height      int
	Time        float64 // seconds on the source timeline
	Placeholder bool
}

// Set is the ordered frame sequence, indexed 0..N-1. Written once by the
// sampler, read-only afterwards.
type Set []Frame

func (s Set) Len() int {
	return len(s)
}

// At returns the frame at index, or ok=false when the index is outside
// the sequence. Drawing code must treat ok=false as a no-op.
func (s Set) At(index int) (Frame, bool) {
	if index < 0 || index >= len(s) {
		return Frame{}, false
	}
	return s[index], true
}

// Placeholders counts frames that were substituted by the generator.
func (s Set) Placeholders() int {
	n := 0
	for _, f := range s {
		if f.Placeholder {
			n++
		}
	}
	return n
}

// EncodeJPEG сжимает изображение с качеством 0..1 (как в canvas.toDataURL).
// Значения вне диапазона приводятся к ближайшей границе.
func EncodeJPEG(img image.Image, quality float64) ([]byte, error) {
	if quality <= 0 {
		quality = 0.01
	}
	if quality > 1 {
		quality = 1
	}

	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: int(quality * 100)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
