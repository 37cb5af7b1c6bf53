package source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os/exec"

	"github.com/ivlev/video2scroll/internal/system"
)

// FFmpegSource извлекает кадры из видеофайла через ffmpeg/ffprobe.
// Метаданные читаются один раз при открытии; ошибка открытия означает,
// что весь набор кадров станет заглушками — повторных попыток нет.
type FFmpegSource struct {
	path     string
	duration float64
	width    int
	height   int
}

func NewFFmpegSource(path string) (*FFmpegSource, error) {
	if err := system.CheckFFmpeg(); err != nil {
		return nil, err
	}

	duration, err := system.GetVideoDuration(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось определить длительность %s: %w", path, err)
	}

	s := &FFmpegSource{path: path, duration: duration}

	// Размеры не критичны: при неудаче остаются (0, 0), и презентер
	// возьмет размер по умолчанию.
	w, h, err := system.GetVideoDimensions(path)
	if err != nil {
		log.Printf("[!] Не удалось определить размеры %s: %v", path, err)
	} else {
		s.width, s.height = w, h
	}

	return s, nil
}

func (s *FFmpegSource) Duration() float64 {
	return s.duration
}

func (s *FFmpegSource) Dimensions() (int, int) {
	return s.width, s.height
}

func (s *FFmpegSource) CaptureFrame(ctx context.Context, t float64) (image.Image, error) {
	// -ss перед -i: быстрый seek по ключевым кадрам. PNG через stdout,
	// чтобы не плодить временные файлы.
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-ss", fmt.Sprintf("%.3f", t),
		"-i", s.path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-c:v", "png",
		"-",
	)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("кадр t=%.3f: %w", t, ctx.Err())
		}
		return nil, fmt.Errorf("ffmpeg кадр t=%.3f: %w: %s", t, err, tail(errBuf.String(), 300))
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("декодирование кадра t=%.3f: %w", t, err)
	}
	return img, nil
}

func (s *FFmpegSource) Close() error {
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
