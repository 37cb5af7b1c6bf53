package source

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
)

// Source — то, из чего флипбук берет кадры: видео, PDF или папка с
// изображениями. Позиция воспроизведения одна на источник, поэтому
// CaptureFrame вызывается строго последовательно.
type Source interface {
	// Duration — длина временной шкалы в секундах. Для PDF и изображений
	// шкала синтетическая (страницы * pageDuration).
	Duration() float64

	// Dimensions — натуральные размеры кадра. (0, 0) если неизвестны.
	Dimensions() (width, height int)

	// CaptureFrame извлекает кадр в момент t. Контекст ограничивает
	// ожидание; по истечении вызывающий подставляет заглушку.
	CaptureFrame(ctx context.Context, t float64) (image.Image, error)

	Close() error
}

// Open выбирает реализацию по типу входа: директория — изображения,
// .pdf — go-fitz, все остальное уходит в ffmpeg.
func Open(path string, pageDuration float64) (Source, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if fi.IsDir() {
		return NewImageDirSource(path, pageDuration)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewFitzPDFSource(path, pageDuration)
	}

	return NewFFmpegSource(path)
}
