package handlers

import (
	"context"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
)

type whisperLister interface {
	Models() ([]string, error)
}

type llmLister interface {
	Models(ctx context.Context) ([]string, error)
}

// HealthHandler reports liveness and readiness. Readiness exercises every
// boundary a request will cross: both tool binaries, the model directory,
// and the language-model server.
type HealthHandler struct {
	ffmpegPath string
	whisperBin string
	whisper    whisperLister
	llm        llmLister
}

func NewHealthHandler(ffmpegPath, whisperBin string, whisper whisperLister, llm llmLister) *HealthHandler {
	return &HealthHandler{
		ffmpegPath: ffmpegPath,
		whisperBin: whisperBin,
		whisper:    whisper,
		llm:        llm,
	}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}

	if err := checkTool(h.ffmpegPath); err != nil {
		checks["ffmpeg"] = "unhealthy: " + err.Error()
	} else {
		checks["ffmpeg"] = "ok"
	}

	if err := checkTool(h.whisperBin); err != nil {
		checks["whisper"] = "unhealthy: " + err.Error()
	} else {
		checks["whisper"] = "ok"
	}

	if models, err := h.whisper.Models(); err != nil {
		checks["whisper_models"] = "unhealthy: " + err.Error()
	} else if len(models) == 0 {
		checks["whisper_models"] = "unhealthy: no models downloaded"
	} else {
		checks["whisper_models"] = "ok"
	}

	if _, err := h.llm.Models(r.Context()); err != nil {
		checks["llm"] = "unhealthy: " + err.Error()
	} else {
		checks["llm"] = "ok"
	}

	status := http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			status = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, status, map[string]interface{}{"status": statusStr(status), "checks": checks})
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unhealthy"
}

// checkTool mirrors how the staging and transcription stages will invoke the
// binary: bare names go through PATH, explicit paths must exist.
func checkTool(path string) error {
	if filepath.Base(path) == path {
		_, err := exec.LookPath(path)
		return err
	}
	_, err := os.Stat(path)
	return err
}
