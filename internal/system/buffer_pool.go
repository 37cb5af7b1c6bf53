package system

import (
	"image"
	"sync"
)

// ImagePool переиспользует буферы *image.RGBA одного размера, чтобы не
// нагружать GC при отрисовке серии заглушек одинаковой геометрии.
type ImagePool struct {
	pools sync.Map // image.Rectangle -> *sync.Pool
}

var globalPool ImagePool

// GetImage выдает буфер нужного размера из глобального пула.
func GetImage(rect image.Rectangle) *image.RGBA {
	return globalPool.Get(rect)
}

// PutImage возвращает буфер в глобальный пул. Передавать nil безопасно.
func PutImage(img *image.RGBA) {
	globalPool.Put(img)
}

func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	v, ok := p.pools.Load(rect)
	if !ok {
		v, _ = p.pools.LoadOrStore(rect, &sync.Pool{
			New: func() interface{} {
				return image.NewRGBA(rect)
			},
		})
	}
	return v.(*sync.Pool).Get().(*image.RGBA)
}

func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	if v, ok := p.pools.Load(img.Rect); ok {
		v.(*sync.Pool).Put(img)
	}
}
