package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Значения по умолчанию для флипбука. Размер 800x450 используется,
// когда натуральные размеры источника неизвестны.
const (
	DefaultTotalFrames = 60
	DefaultQuality     = 0.8
	DefaultWidth       = 800
	DefaultHeight      = 450
	DefaultMaxWidth    = 1280

	// Таймаут ожидания одного кадра. Если за это время кадр не извлечен,
	// вместо него подставляется градиентная заглушка.
	SeekTimeout = 1 * time.Second

	// Пауза после последнего события скролла перед финальной перерисовкой.
	DebounceMS = 50

	// Количество секций-наполнителей, создающих высоту для прокрутки.
	FillerSections = 15

	// Длительность, подставляемая когда источник недоступен вовсе.
	FallbackDuration = 10.0
)

// Options — настройки сэмплирования и страницы. Читаются из YAML-файла
// и/или флагов; после слияния не изменяются.
type Options struct {
	TotalFrames int     `yaml:"totalFrames"`
	Quality     float64 `yaml:"quality"`
	FrameRate   float64 `yaml:"frameRate"` // принимается для совместимости, в расчетах не участвует
	MaxWidth    int     `yaml:"maxWidth"`
	Title       string  `yaml:"title"`
	PublicURL   string  `yaml:"publicURL"`
}

func DefaultOptions() Options {
	return Options{
		TotalFrames: DefaultTotalFrames,
		Quality:     DefaultQuality,
		MaxWidth:    DefaultMaxWidth,
		Title:       "Scroll Flipbook",
	}
}

// Merge накладывает непустые значения поверх текущих и нормализует результат.
func (o Options) Merge(over Options) Options {
	if over.TotalFrames > 0 {
		o.TotalFrames = over.TotalFrames
	}
	if over.Quality > 0 {
		o.Quality = over.Quality
	}
	if over.FrameRate > 0 {
		o.FrameRate = over.FrameRate
	}
	if over.MaxWidth > 0 {
		o.MaxWidth = over.MaxWidth
	}
	if over.Title != "" {
		o.Title = over.Title
	}
	if over.PublicURL != "" {
		o.PublicURL = over.PublicURL
	}
	return o.normalize()
}

func (o Options) normalize() Options {
	if o.TotalFrames < 1 {
		o.TotalFrames = 1
	}
	if o.Quality <= 0 || o.Quality > 1 {
		o.Quality = DefaultQuality
	}
	return o
}

// ReadOptions читает настройки из YAML-файла.
func ReadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("некорректный файл настроек %s: %w", path, err)
	}
	return opts, nil
}

// Config — полная конфигурация проекта флипбука.
type Config struct {
	InputPath    string
	OutputPage   string
	ManifestPath string

	Options Options

	// Для PDF и папок с изображениями: сколько секунд синтетической
	// временной шкалы приходится на одну страницу/картинку.
	PageDuration float64

	ShowStats    bool
	BuildVersion string
}
