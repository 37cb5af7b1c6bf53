package page

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/ivlev/video2scroll/internal/config"
	"github.com/ivlev/video2scroll/internal/frame"
)

// Builder собирает автономную HTML-страницу флипбука: канвас, полоса
// прогресса, подсказка, инфо-блок, секции-наполнители и все кадры,
// зашитые в страницу как data URI. Состояние не сохраняется — страница
// строится с нуля при каждой генерации.
type Builder struct {
	Options  config.Options
	Duration float64

	// Снимок статуса на момент сборки; на странице не обновляется.
	Ready bool

	// Светлый текст поверх темного первого кадра и наоборот.
	Dark bool
}

type pageData struct {
	Title       string
	Width       int
	Height      int
	TotalFrames int
	Duration    float64
	DebounceMS  int
	Status      string
	Theme       string
	Frames      template.JS
	Fillers     []int
	QR          template.URL
}

func (b *Builder) Build(set frame.Set) ([]byte, error) {
	width, height := config.DefaultWidth, config.DefaultHeight
	if f, ok := set.At(0); ok && f.Width > 0 && f.Height > 0 {
		// Канвас получает размер первого кадра один раз и больше
		// не меняется.
		width, height = f.Width, f.Height
	}

	frames := make([]string, 0, set.Len())
	for _, f := range set {
		frames = append(frames, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(f.Data))
	}

	// JSON собирается в Go: авто-экранирование html/template искажает
	// base64 в JS-строках (+ и / превращаются в escape-последовательности).
	framesJSON, err := json.Marshal(frames)
	if err != nil {
		return nil, err
	}

	fillers := make([]int, config.FillerSections)
	for i := range fillers {
		fillers[i] = i + 1
	}

	status := "loading"
	if b.Ready {
		status = "ready"
	}

	theme := "light"
	if b.Dark {
		theme = "dark"
	}

	data := pageData{
		Title:       b.Options.Title,
		Width:       width,
		Height:      height,
		TotalFrames: set.Len(),
		Duration:    b.Duration,
		DebounceMS:  config.DebounceMS,
		Status:      status,
		Theme:       theme,
		Frames:      template.JS(framesJSON),
		Fillers:     fillers,
	}

	if b.Options.PublicURL != "" {
		qr, err := shareQR(b.Options.PublicURL)
		if err != nil {
			return nil, fmt.Errorf("QR-код: %w", err)
		}
		data.QR = qr
	}

	var buf bytes.Buffer
	if err := flipbookTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var flipbookTemplate = template.Must(template.New("flipbook").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            background: #0b0f14;
            color: #e6e6e6;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
        }
        body.light { background: #f4f4f2; color: #1a1a1a; }
        .stage {
            position: fixed;
            inset: 0;
            display: flex;
            align-items: center;
            justify-content: center;
            z-index: -1;
        }
        canvas {
            max-width: 92vw;
            max-height: 82vh;
            border-radius: 6px;
            background: #000;
        }
        .progress {
            position: fixed;
            top: 0;
            left: 0;
            height: 4px;
            width: 0;
            background: #00b67a;
            z-index: 10;
        }
        .instructions {
            position: fixed;
            top: 16px;
            left: 16px;
            max-width: 320px;
            padding: 10px 14px;
            background: rgba(0, 0, 0, 0.55);
            color: #fff;
            border-radius: 8px;
            font-size: 0.85rem;
            line-height: 1.4;
        }
        body.light .instructions { background: rgba(255, 255, 255, 0.8); color: #1a1a1a; }
        .info {
            position: fixed;
            bottom: 16px;
            left: 16px;
            padding: 6px 12px;
            background: rgba(0, 0, 0, 0.55);
            color: #fff;
            border-radius: 8px;
            font-size: 0.8rem;
            font-variant-numeric: tabular-nums;
        }
        body.light .info { background: rgba(255, 255, 255, 0.8); color: #1a1a1a; }
        .filler {
            height: 420px;
            display: flex;
            align-items: center;
            justify-content: center;
            border-bottom: 1px solid rgba(128, 128, 128, 0.15);
            color: rgba(128, 128, 128, 0.35);
            font-size: 0.9rem;
            letter-spacing: 0.1em;
            text-transform: uppercase;
        }
        .share {
            position: fixed;
            bottom: 16px;
            right: 16px;
            padding: 6px;
            background: #fff;
            border-radius: 8px;
        }
        .share img { display: block; }
    </style>
</head>
<body class="{{.Theme}}">
    <div class="progress" id="progress-bar"></div>
    <div class="stage">
        <canvas id="flipbook" width="{{.Width}}" height="{{.Height}}"></canvas>
    </div>
    <div class="instructions">
        <strong>{{.Title}}</strong><br>
        Scroll to scrub through {{.TotalFrames}} frames. Status: {{.Status}}.
    </div>
    <div class="info" id="frame-info">Frame 1 / {{.TotalFrames}}</div>
{{range .Fillers}}    <section class="filler">Section {{.}}</section>
{{end}}{{if .QR}}    <div class="share"><img src="{{.QR}}" alt="Share QR" width="96" height="96"></div>
{{end}}    <script>
        const TOTAL_FRAMES = {{.TotalFrames}};
        const DURATION = {{.Duration}};
        const DEBOUNCE_MS = {{.DebounceMS}};
        const FRAMES = {{.Frames}};

        const canvas = document.getElementById('flipbook');
        const ctx = canvas.getContext('2d');
        const bar = document.getElementById('progress-bar');
        const info = document.getElementById('frame-info');

        let currentFrame = -1;
        let debounceTimer = null;

        function clamp(v, lo, hi) {
            return Math.min(Math.max(v, lo), hi);
        }

        function scrollProgress() {
            const scrollable = document.documentElement.scrollHeight - window.innerHeight;
            if (scrollable <= 0) return 0;
            return clamp(window.scrollY / scrollable, 0, 1);
        }

        function targetFrame(progress) {
            if (TOTAL_FRAMES <= 1) return 0;
            return Math.floor(progress * (TOTAL_FRAMES - 1));
        }

        function updateInfo(index) {
            const t = index * DURATION / TOTAL_FRAMES;
            const pct = TOTAL_FRAMES > 1 ? index / (TOTAL_FRAMES - 1) * 100 : 0;
            info.textContent = 'Frame ' + (index + 1) + ' / ' + TOTAL_FRAMES +
                ' · ' + t.toFixed(2) + 's · ' + pct.toFixed(0) + '%';
        }

        function drawFrame(index) {
            if (index < 0 || index >= FRAMES.length) return;
            const img = new Image();
            // Декод асинхронный и не отменяется: при быстрой прокрутке
            // канвас достается последнему ЗАВЕРШИВШЕМУСЯ декоду, а не
            // последнему запрошенному кадру. Это осознанно оставлено
            // как есть — хвостовая перерисовка после дебаунса сводит
            // изображение к актуальной позиции.
            img.onload = () => {
                ctx.clearRect(0, 0, canvas.width, canvas.height);
                ctx.drawImage(img, 0, 0, canvas.width, canvas.height);
                currentFrame = index;
                updateInfo(index);
            };
            img.src = FRAMES[index];
        }

        function onScroll() {
            const p = scrollProgress();
            bar.style.width = (p * 100) + '%';

            const target = targetFrame(p);
            if (target !== currentFrame && target >= 0 && target < FRAMES.length) {
                drawFrame(target);
            }

            if (debounceTimer) clearTimeout(debounceTimer);
            debounceTimer = setTimeout(() => {
                const settled = scrollProgress();
                bar.style.width = (settled * 100) + '%';
                drawFrame(targetFrame(settled));
            }, DEBOUNCE_MS);
        }

        window.addEventListener('scroll', onScroll);
        window.addEventListener('resize', onScroll);
        drawFrame(0);
    </script>
</body>
</html>
`))
