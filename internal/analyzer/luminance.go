package analyzer

import (
	"image"
	"image/color"
)

// AverageLuminance returns the mean gray level (0-255) of an image,
// sampled on a coarse grid. Full-resolution scanning is pointless here:
// the result only picks an overlay theme.
func AverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	step := bounds.Dx() / 64
	if step < 1 {
		step = 1
	}

	var sum, count float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			sum += float64(g.Y)
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / count
}

// IsDark reports whether overlays on top of this image should use light text.
func IsDark(img image.Image) bool {
	return AverageLuminance(img) < 128
}
