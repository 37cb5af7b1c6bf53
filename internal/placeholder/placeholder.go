package placeholder

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/video2scroll/internal/config"
	"github.com/ivlev/video2scroll/internal/system"
)

// Заглушка — детерминированная функция (index, total, duration):
// горизонтальный градиент из двух HSL-точек и подпись с номером кадра
// и номинальным таймкодом. Повторный вызов с теми же аргументами дает
// попиксельно тот же результат.

// Hue возвращает оттенок первой точки градиента для кадра index.
func Hue(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 360 * float64(index) / float64(total)
}

// Generate рисует заглушку 800x450. Буфер берется из пула; когда байты
// закодированы, его следует вернуть через system.PutImage.
func Generate(index, total int, duration float64) *image.RGBA {
	rect := image.Rect(0, 0, config.DefaultWidth, config.DefaultHeight)
	img := system.GetImage(rect)

	if duration <= 0 {
		duration = config.FallbackDuration
	}

	h1 := Hue(index, total)
	h2 := h1 + 60
	left := HSL(h1, 0.7, 0.5)
	right := HSL(h2, 0.7, 0.5)

	// Градиент заполняет каждый пиксель, поэтому переиспользованный
	// буфер не несет следов предыдущего содержимого.
	w := rect.Dx()
	for x := 0; x < w; x++ {
		t := float64(x) / float64(w-1)
		c := lerpRGBA(left, right, t)
		for y := 0; y < rect.Dy(); y++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 255
		}
	}

	timestamp := 0.0
	if total > 0 {
		timestamp = float64(index) / float64(total) * duration
	}

	drawCenteredLabel(img, fmt.Sprintf("Frame %d / %d", index+1, total), -8)
	drawCenteredLabel(img, fmt.Sprintf("t = %.2fs", timestamp), 12)

	return img
}

func drawCenteredLabel(img *image.RGBA, text string, offsetY int) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: face,
	}

	width := d.MeasureString(text)
	cx := fixed.I(img.Rect.Dx())/2 - width/2
	cy := fixed.I(img.Rect.Dy()/2 + offsetY)
	d.Dot = fixed.Point26_6{X: cx, Y: cy}
	d.DrawString(text)
}

// HSL переводит оттенок/насыщенность/светлоту в RGBA. Оттенок в градусах,
// остальные в [0,1].
func HSL(h, s, l float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(float64(a.R) + (float64(b.R)-float64(a.R))*t)),
		G: uint8(math.Round(float64(a.G) + (float64(b.G)-float64(a.G))*t)),
		B: uint8(math.Round(float64(a.B) + (float64(b.B)-float64(a.B))*t)),
		A: 255,
	}
}
