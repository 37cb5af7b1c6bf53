package engine

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/ivlev/video2scroll/internal/analyzer"
	"github.com/ivlev/video2scroll/internal/config"
	"github.com/ivlev/video2scroll/internal/frame"
	"github.com/ivlev/video2scroll/internal/manifest"
	"github.com/ivlev/video2scroll/internal/page"
	"github.com/ivlev/video2scroll/internal/sampler"
	"github.com/ivlev/video2scroll/internal/source"
)

// FlipbookProject — оркестрация всего конвейера: источник -> сэмплер ->
// сборка страницы -> артефакты на диске. Source == nil означает, что
// загрузка источника не удалась: проект не падает, а собирает страницу
// целиком из заглушек.
type FlipbookProject struct {
	Config *config.Config
	Source source.Source
}

func NewFlipbookProject(cfg *config.Config, src source.Source) *FlipbookProject {
	return &FlipbookProject{Config: cfg, Source: src}
}

// Result — готовый набор кадров и собранная страница.
type Result struct {
	Set      frame.Set
	Page     []byte
	Duration float64
}

func (p *FlipbookProject) Build(ctx context.Context) (*Result, error) {
	opts := p.Config.Options

	duration := config.FallbackDuration
	if p.Source != nil {
		if d := p.Source.Duration(); d > 0 {
			duration = d
		}
	}

	fmt.Println("--- [PROJECT: SCROLL FLIPBOOK] ---")
	fmt.Printf("[*] Источник: %s | Кадров: %d | Длительность: %.2fs\n",
		p.Config.InputPath, opts.TotalFrames, duration)
	if p.Source == nil {
		fmt.Println("[!] Источник недоступен, весь набор будет из заглушек")
	}
	fmt.Println("----------------------------------")

	s := &sampler.Sampler{Source: p.Source, Options: opts}
	set := s.Run(ctx)

	if n := set.Placeholders(); n > 0 {
		fmt.Printf("[!] Заглушек в наборе: %d/%d\n", n, set.Len())
	}

	builder := &page.Builder{
		Options:  opts,
		Duration: duration,
		Ready:    set.Len() > 0,
		Dark:     firstFrameIsDark(set),
	}

	html, err := builder.Build(set)
	if err != nil {
		return nil, fmt.Errorf("сборка страницы: %w", err)
	}

	return &Result{Set: set, Page: html, Duration: duration}, nil
}

// Run собирает флипбук и пишет страницу с манифестом на диск.
func (p *FlipbookProject) Run(ctx context.Context) error {
	startTime := time.Now()

	result, err := p.Build(ctx)
	if err != nil {
		return err
	}
	sampleEnd := time.Now()

	if err := os.WriteFile(p.Config.OutputPage, result.Page, 0644); err != nil {
		return fmt.Errorf("запись страницы: %w", err)
	}
	fmt.Printf("[+] Страница: %s (%d КБ)\n", p.Config.OutputPage, len(result.Page)/1024)

	if p.Config.ManifestPath != "" {
		m := manifest.Build(p.Config.InputPath, result.Duration, p.Config.Options, result.Set)
		if err := manifest.Write(m, p.Config.ManifestPath); err != nil {
			return fmt.Errorf("запись манифеста: %w", err)
		}
		fmt.Printf("[+] Манифест: %s\n", p.Config.ManifestPath)
	}

	if p.Config.ShowStats {
		p.printStats(result, startTime, sampleEnd)
	}

	return nil
}

func (p *FlipbookProject) printStats(result *Result, startTime, sampleEnd time.Time) {
	totalTime := time.Since(startTime)
	sampleTime := sampleEnd.Sub(startTime)
	effFPS := float64(result.Set.Len()) / totalTime.Seconds()

	cores, _ := cpu.Counts(true)
	memUsed := 0.0
	if vm, err := mem.VirtualMemory(); err == nil {
		memUsed = float64(vm.Used) / 1024 / 1024
	}

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Sampling: %.2fs\n"+
			"Frames: %d (placeholders: %d)\n"+
			"Effective FPS: %.2f\n"+
			"CPU Cores: %d | Mem Used: %.0f MB\n"+
			"----------------------------\n",
		p.Config.BuildVersion, totalTime.Seconds(), sampleTime.Seconds(),
		result.Set.Len(), result.Set.Placeholders(), effFPS, cores, memUsed,
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Input: %s | Frames: %d | Total: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		p.Config.InputPath,
		result.Set.Len(),
		totalTime.Seconds(),
		effFPS,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}

// firstFrameIsDark подбирает тему оверлеев по среднему тону первого кадра.
func firstFrameIsDark(set frame.Set) bool {
	f, ok := set.At(0)
	if !ok || f.Data == nil {
		return true
	}
	img, err := jpeg.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return true
	}
	return analyzer.IsDark(img)
}
