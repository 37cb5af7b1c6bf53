package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ivlev/video2scroll/internal/config"
	"github.com/ivlev/video2scroll/internal/engine"
	"github.com/ivlev/video2scroll/internal/server"
	"github.com/ivlev/video2scroll/internal/source"
	"github.com/ivlev/video2scroll/internal/system"
)

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input/video", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Путь к видео, PDF или папке с изображениями (по умолчанию: самый свежий файл в input/video/)")
	outputPtr := flag.String("output", "", "Путь к HTML-странице (если пусто, генерируется автоматически в output/)")
	configPtr := flag.String("config", "", "Путь к YAML-файлу настроек")
	framesPtr := flag.Int("frames", 0, "Количество кадров (0 — из конфига, по умолчанию 60)")
	qualityPtr := flag.Float64("quality", 0, "Качество JPEG 0..1 (0 — из конфига, по умолчанию 0.8)")
	frameRatePtr := flag.Float64("framerate", 0, "Частота кадров (принимается для совместимости, не используется)")
	maxWidthPtr := flag.Int("max-width", 0, "Максимальная ширина кадра в пикселях (0 — из конфига)")
	pageDurationPtr := flag.Float64("page-duration", 3.0, "Секунд на страницу для PDF/изображений")
	titlePtr := flag.String("title", "", "Заголовок страницы")
	urlPtr := flag.String("url", "", "Публичный адрес для QR-кода на странице")
	servePtr := flag.Bool("serve", false, "Поднять dev-сервер вместо записи файлов")
	addrPtr := flag.String("addr", ":8080", "Адрес dev-сервера")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	flag.Parse()

	opts := config.DefaultOptions()
	if *configPtr != "" {
		fileOpts, err := config.ReadOptions(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения конфига: %v", err)
		}
		opts = opts.Merge(fileOpts)
	}
	opts = opts.Merge(config.Options{
		TotalFrames: *framesPtr,
		Quality:     *qualityPtr,
		FrameRate:   *frameRatePtr,
		MaxWidth:    *maxWidthPtr,
		Title:       *titlePtr,
		PublicURL:   *urlPtr,
	})

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestVideo("input/video")
		if err != nil {
			log.Printf("[!] Вход не указан и не найден: %v", err)
		} else {
			inputPath = latest
			fmt.Printf("[*] Выбран файл: %s\n", inputPath)
		}
	}

	// Единственная попытка загрузки источника. Неудача — не фатальная:
	// страница соберется целиком из градиентных заглушек.
	var src source.Source
	if inputPath != "" {
		var err error
		src, err = source.Open(inputPath, *pageDurationPtr)
		if err != nil {
			log.Printf("[!] Источник не загрузился, продолжаю с заглушками: %v", err)
			src = nil
		}
	}
	if src != nil {
		defer src.Close()
	}

	finalOutput := *outputPtr
	if finalOutput == "" {
		nameOnly := "flipbook"
		if inputPath != "" {
			baseName := filepath.Base(inputPath)
			nameOnly = strings.TrimSuffix(baseName, filepath.Ext(baseName))
			nameOnly = strings.ReplaceAll(nameOnly, " ", "_")
		}
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		finalOutput = filepath.Join("output", fmt.Sprintf("%s_%s.html", nameOnly, timestamp))
	}

	manifestPath := strings.TrimSuffix(finalOutput, filepath.Ext(finalOutput)) + ".manifest.yaml"

	cfg := &config.Config{
		InputPath:    inputPath,
		OutputPage:   finalOutput,
		ManifestPath: manifestPath,
		Options:      opts,
		PageDuration: *pageDurationPtr,
		ShowStats:    *statsPtr,
		BuildVersion: "dev",
	}

	project := engine.NewFlipbookProject(cfg, src)
	ctx := context.Background()

	if *servePtr {
		if err := godotenv.Load(); err == nil {
			log.Println("[*] Переменные окружения загружены из .env")
		}

		result, err := project.Build(ctx)
		if err != nil {
			log.Fatalf("[-] Ошибка сборки: %v", err)
		}

		addr := *addrPtr
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		}

		srv := server.New(server.Config{
			Page:     result.Page,
			Set:      result.Set,
			Duration: result.Duration,
		})

		fmt.Printf("[*] Флипбук доступен на http://localhost%s\n", addr)
		log.Fatal(http.ListenAndServe(addr, srv))
	}

	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputPage)
}
