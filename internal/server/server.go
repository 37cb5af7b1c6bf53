package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ivlev/video2scroll/internal/frame"
	"github.com/ivlev/video2scroll/internal/scroll"
)

// Config — готовые артефакты флипбука, которые раздает dev-сервер.
// Сервер ничего не хранит и не пересобирает: набор кадров строится один
// раз на процесс.
type Config struct {
	Page     []byte
	Set      frame.Set
	Duration float64
}

type Server struct {
	router   chi.Router
	page     []byte
	set      frame.Set
	duration float64
}

func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	s := &Server{
		router:   r,
		page:     cfg.Page,
		set:      cfg.Set,
		duration: cfg.Duration,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/", s.handlePage)
	s.router.Get("/frames/{index}.jpg", s.handleFrame)
	s.router.Get("/api/state", s.handleState)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.page)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	f, ok := s.set.At(index)
	if !ok || f.Data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(f.Data)
}

type stateResponse struct {
	Progress    float64 `json:"progress"`
	Frame       int     `json:"frame"`
	Time        float64 `json:"time"`
	Duration    float64 `json:"duration"`
	TotalFrames int     `json:"totalFrames"`
	Placeholder bool    `json:"placeholder"`
}

// handleState отвечает тем же отображением прогресс -> кадр, что и скрипт
// на странице; удобно для отладки и для тестов соответствия.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	progress := 0.0
	if raw := r.URL.Query().Get("progress"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "bad progress", http.StatusBadRequest)
			return
		}
		progress = scroll.Clamp(p, 0, 1)
	}

	index := scroll.TargetFrame(progress, s.set.Len())
	resp := stateResponse{
		Progress:    progress,
		Frame:       index,
		Duration:    s.duration,
		TotalFrames: s.set.Len(),
	}
	if f, ok := s.set.At(index); ok {
		resp.Time = f.Time
		resp.Placeholder = f.Placeholder
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
