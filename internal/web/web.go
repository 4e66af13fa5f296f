// Package web serves the single-page upload UI. Everything is embedded so
// the server ships as one binary with no asset directory to deploy.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/malavshah9/audiobrief/internal/prompt"
)

//go:embed templates static
var assets embed.FS

type Handler struct {
	index *template.Template
}

func NewHandler() (*Handler, error) {
	tmpl, err := template.ParseFS(assets, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return &Handler{index: tmpl}, nil
}

type categoryOption struct {
	Value string
	Label string
}

type indexData struct {
	Categories []categoryOption
}

// Index renders the upload form. Category options come straight from the
// prompt package so the form can never offer a category the pipeline would
// reject.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	opts := make([]categoryOption, 0, len(prompt.Categories()))
	for _, c := range prompt.Categories() {
		opts = append(opts, categoryOption{Value: string(c), Label: c.Label()})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.index.Execute(w, indexData{Categories: opts}); err != nil {
		slog.Error("render index", "error", err)
	}
}

// Static serves the embedded assets under /static/.
func (h *Handler) Static() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// The static directory is embedded at compile time; failing to
		// open it means the binary itself is broken.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
