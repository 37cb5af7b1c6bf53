package sampler

import (
	"context"
	"image"
	"log"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/video2scroll/internal/config"
	"github.com/ivlev/video2scroll/internal/frame"
	"github.com/ivlev/video2scroll/internal/placeholder"
	"github.com/ivlev/video2scroll/internal/scroll"
	"github.com/ivlev/video2scroll/internal/source"
	"github.com/ivlev/video2scroll/internal/system"
)

// Sampler набирает ровно TotalFrames кадров по равномерной сетке
// t_i = i*duration/N. Захват строго последовательный (у источника одна
// позиция воспроизведения), JPEG-кодирование распараллелено.
//
// Сбой отдельного кадра или всего источника не прерывает набор: на место
// кадра встает градиентная заглушка. Source == nil означает, что источник
// не загрузился вовсе — тогда заглушками становятся все кадры.
type Sampler struct {
	Source  source.Source
	Options config.Options
}

type captureResult struct {
	index       int
	img         image.Image
	pooled      *image.RGBA // буфер заглушки, вернуть в пул после кодирования
	time        float64
	placeholder bool
}

// Кодировщиков немного: JPEG сжатие быстрое, а буферов captureResult
// в полете не должно копиться больше, чем нужно.
const encodeWorkers = 4

func (s *Sampler) Run(ctx context.Context) frame.Set {
	opts := s.Options
	total := opts.TotalFrames
	if total < 1 {
		total = 1
	}

	duration := config.FallbackDuration
	if s.Source != nil {
		if d := s.Source.Duration(); d > 0 {
			duration = d
		}
	}

	frames := make(frame.Set, total)
	captures := make(chan captureResult, encodeWorkers)

	var g errgroup.Group
	workers := encodeWorkers
	if workers > total {
		workers = total
	}
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for c := range captures {
				img := c.img
				if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
					img = downscale(img, opts.MaxWidth)
				}

				data, err := frame.EncodeJPEG(img, opts.Quality)
				if c.pooled != nil {
					system.PutImage(c.pooled)
				}
				if err != nil {
					log.Printf("[!] Ошибка кодирования кадра %d: %v", c.index, err)
					continue
				}

				b := img.Bounds()
				// Индексы уникальны, слайс заполнен заранее — записи
				// из разных воркеров не пересекаются.
				frames[c.index] = frame.Frame{
					Data:        data,
					Width:       b.Dx(),
					Height:      b.Dy(),
					Time:        c.time,
					Placeholder: c.placeholder,
				}
			}
			return nil
		})
	}

	for i := 0; i < total; i++ {
		t := scroll.FrameTime(i, total, duration)

		c := captureResult{index: i, time: t}
		if s.Source == nil {
			c.pooled = placeholder.Generate(i, total, duration)
			c.img = c.pooled
			c.placeholder = true
		} else {
			captureCtx, cancel := context.WithTimeout(ctx, config.SeekTimeout)
			img, err := s.Source.CaptureFrame(captureCtx, t)
			cancel()
			if err != nil {
				log.Printf("[!] Кадр %d (t=%.3f) не извлечен, подставляю заглушку: %v", i, t, err)
				c.pooled = placeholder.Generate(i, total, duration)
				c.img = c.pooled
				c.placeholder = true
			} else {
				c.img = img
			}
		}
		captures <- c
	}
	close(captures)

	// Воркеры ошибок не возвращают, Wait здесь — только барьер.
	_ = g.Wait()

	// Страховка инварианта |frames| == N: кадр без данных (отказ
	// кодировщика) дозаполняется заглушкой.
	for i := range frames {
		if frames[i].Data == nil {
			img := placeholder.Generate(i, total, duration)
			data, err := frame.EncodeJPEG(img, opts.Quality)
			system.PutImage(img)
			if err != nil {
				continue
			}
			frames[i] = frame.Frame{
				Data:        data,
				Width:       config.DefaultWidth,
				Height:      config.DefaultHeight,
				Time:        scroll.FrameTime(i, total, duration),
				Placeholder: true,
			}
		}
	}

	return frames
}

// downscale сжимает кадр до maxWidth по ширине с сохранением пропорций.
func downscale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
