// Package scroll maps vertical scroll position to frame indices. The inline
// page script mirrors these formulas; keeping them here lets the server and
// the tests exercise the exact mapping the browser uses.
package scroll

import "math"

// Progress normalizes scrollTop against the scrollable height into [0,1].
// A page that cannot scroll (pageHeight <= viewportHeight) reports 0.
func Progress(scrollTop, pageHeight, viewportHeight float64) float64 {
	scrollable := pageHeight - viewportHeight
	if scrollable <= 0 {
		return 0
	}
	return Clamp(scrollTop/scrollable, 0, 1)
}

// TargetFrame converts progress into a frame index: floor(p*(N-1)),
// always within [0, N-1].
func TargetFrame(progress float64, totalFrames int) int {
	if totalFrames <= 1 {
		return 0
	}
	idx := int(math.Floor(Clamp(progress, 0, 1) * float64(totalFrames-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= totalFrames {
		idx = totalFrames - 1
	}
	return idx
}

// FrameTime returns the nominal timestamp of frame i on a timeline of the
// given duration: i * duration / N.
func FrameTime(index, totalFrames int, duration float64) float64 {
	if totalFrames <= 0 {
		return 0
	}
	return float64(index) * duration / float64(totalFrames)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
