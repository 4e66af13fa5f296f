package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/malavshah9/audiobrief/internal/pipeline"
)

// multipartMemory caps how much of an upload is buffered in memory before
// spilling to disk; uploads themselves are bounded by MaxBytesReader.
const multipartMemory = 32 << 20

type summaryRunner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// SummariesHandler accepts one audio upload and drives it through the whole
// pipeline synchronously. The response is the terminal artifact; nothing is
// stored server side.
type SummariesHandler struct {
	pipe           summaryRunner
	maxUploadBytes int64
}

func NewSummariesHandler(pipe summaryRunner, maxUploadBytes int64) *SummariesHandler {
	return &SummariesHandler{pipe: pipe, maxUploadBytes: maxUploadBytes}
}

func (h *SummariesHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload_too_large",
				"the upload exceeds the configured size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "an audio file is required")
		return
	}
	defer file.Close()

	req := pipeline.Request{
		Audio:        file,
		Filename:     header.Filename,
		Category:     r.FormValue("category"),
		WhisperModel: r.FormValue("whisper_model"),
		LLMModel:     r.FormValue("llm_model"),
		Context:      r.FormValue("context"),
	}

	if req.Category == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "category is required")
		return
	}
	if req.WhisperModel == "" || req.LLMModel == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "whisper_model and llm_model are required")
		return
	}

	result, err := h.pipe.Run(r.Context(), req)
	if err != nil {
		var perr *pipeline.Error
		if errors.As(err, &perr) {
			writeRunError(w, perr)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
