package source

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
)

// ImageDirSource — отсортированная папка изображений как источник кадров.
type ImageDirSource struct {
	paths        []string
	pageDuration float64
}

func NewImageDirSource(dir string, pageDuration float64) (*ImageDirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".jpg" || ext == ".jpeg" || ext == ".png" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("в папке %s нет изображений", dir)
	}
	if pageDuration <= 0 {
		pageDuration = 1
	}

	return &ImageDirSource{paths: paths, pageDuration: pageDuration}, nil
}

func (s *ImageDirSource) Duration() float64 {
	return float64(len(s.paths)) * s.pageDuration
}

func (s *ImageDirSource) Dimensions() (int, int) {
	f, err := os.Open(s.paths[0])
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

func (s *ImageDirSource) CaptureFrame(ctx context.Context, t float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index := int(t / s.pageDuration)
	if index < 0 {
		index = 0
	}
	if index >= len(s.paths) {
		index = len(s.paths) - 1
	}

	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *ImageDirSource) Close() error {
	return nil
}
