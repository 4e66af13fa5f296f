package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/malavshah9/audiobrief/internal/api"
	"github.com/malavshah9/audiobrief/internal/config"
	"github.com/malavshah9/audiobrief/internal/pipeline"
	"github.com/malavshah9/audiobrief/internal/runner"
	"github.com/malavshah9/audiobrief/internal/staging"
	"github.com/malavshah9/audiobrief/internal/summarize"
	"github.com/malavshah9/audiobrief/internal/transcribe"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
	slog.SetDefault(logger)

	// Refuse to start on a broken environment rather than failing the
	// first upload.
	if err := cfg.Validate(); err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	run := runner.New()
	stager := staging.NewFFmpegStager(cfg.Tools.FFmpegPath, run)
	transcriber := transcribe.NewWhisperCLI(cfg.Whisper.BinaryPath, cfg.Whisper.ModelDir, cfg.Whisper.Timeout.Std(), run)

	summarizer, err := summarize.New(cfg.LLM)
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	pipe := pipeline.New(stager, transcriber, summarizer, logger)

	router, err := api.NewRouter(cfg, pipe, transcriber, summarizer)
	if err != nil {
		slog.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	// A single request legitimately spans both stage timeouts, so the
	// write timeout has to outlast them.
	requestBudget := cfg.Whisper.Timeout.Std() + cfg.LLM.Timeout.Std() + 2*time.Minute

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      requestBudget,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("starting server",
			"addr", cfg.Server.Addr,
			"llm_backend", cfg.LLM.Backend,
			"llm_base_url", cfg.LLM.BaseURL,
			"model_dir", cfg.Whisper.ModelDir,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
