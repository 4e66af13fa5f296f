package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/malavshah9/audiobrief/internal/export"
)

// ExportHandler turns a finished summary back into a downloadable document.
// The DOCX is generated into a temp file, streamed, and removed; consistent
// with the rest of the service, nothing persists after the response.
type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

type exportDocxRequest struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func (h *ExportHandler) Docx(w http.ResponseWriter, r *http.Request) {
	var req exportDocxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Markdown) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "markdown is required")
		return
	}

	tmp, err := os.CreateTemp("", "audiobrief-export-*.docx")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "could not create export file")
		return
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := export.MarkdownDocx(req.Title, req.Markdown, path); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "could not render document")
		return
	}

	f, err := os.Open(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "could not read export file")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="`+docxFilename(req.Title)+`"`)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, f)
}

func docxFilename(title string) string {
	name := unsafeFilename.ReplaceAllString(strings.TrimSpace(title), "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "summary"
	}
	return name + ".docx"
}
