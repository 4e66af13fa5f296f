package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/malavshah9/audiobrief/internal/api/handlers"
	"github.com/malavshah9/audiobrief/internal/api/middleware"
	"github.com/malavshah9/audiobrief/internal/config"
	"github.com/malavshah9/audiobrief/internal/pipeline"
	"github.com/malavshah9/audiobrief/internal/summarize"
	"github.com/malavshah9/audiobrief/internal/transcribe"
	"github.com/malavshah9/audiobrief/internal/web"
)

type Router struct {
	mux         *chi.Mux
	cfg         *config.Config
	pipe        *pipeline.Pipeline
	transcriber transcribe.Transcriber
	summarizer  summarize.Summarizer
	ui          *web.Handler
}

func NewRouter(cfg *config.Config, pipe *pipeline.Pipeline, transcriber transcribe.Transcriber, summarizer summarize.Summarizer) (*Router, error) {
	ui, err := web.NewHandler()
	if err != nil {
		return nil, fmt.Errorf("web ui: %w", err)
	}
	return &Router{
		mux:         chi.NewRouter(),
		cfg:         cfg,
		pipe:        pipe,
		transcriber: transcriber,
		summarizer:  summarizer,
		ui:          ui,
	}, nil
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	// Health endpoints
	health := handlers.NewHealthHandler(
		rt.cfg.Tools.FFmpegPath,
		rt.cfg.Whisper.BinaryPath,
		rt.transcriber,
		rt.summarizer,
	)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Browser UI
	r.Get("/", rt.ui.Index)
	r.Handle("/static/*", rt.ui.Static())

	summariesH := handlers.NewSummariesHandler(rt.pipe, rt.cfg.MaxUploadBytes())
	modelsH := handlers.NewModelsHandler(rt.transcriber, rt.summarizer)
	exportH := handlers.NewExportHandler()

	// API v1. The rate limit covers only the API: each summaries request
	// monopolizes a whisper subprocess, so the ceiling is low.
	rl := middleware.NewRateLimiter(5, 10)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rl.Limit)

		r.Get("/models", modelsH.List)
		r.Post("/summaries", summariesH.Create)
		r.Post("/export/docx", exportH.Docx)
	})

	return r
}
