package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExportDocx(t *testing.T) {
	h := NewExportHandler()

	body := `{"title": "Podcast Summary", "markdown": "# Episode 12\n\n**Great** discussion."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/export/docx", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Docx(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "wordprocessingml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="Podcast-Summary.docx"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	// DOCX is a zip; check the magic bytes rather than trusting the header.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("body does not start with zip magic")
	}
}

func TestExportDocxBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"title": `},
		{"missing markdown", `{"title": "x"}`},
		{"blank markdown", `{"title": "x", "markdown": "  \n "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewExportHandler()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/export/docx", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Docx(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestDocxFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Podcast Summary", "Podcast-Summary.docx"},
		{"  Meeting: 2024/11  ", "Meeting-2024-11.docx"},
		{"", "summary.docx"},
		{"///", "summary.docx"},
		{"already-safe_name.v2", "already-safe_name.v2.docx"},
	}

	for _, tt := range tests {
		if got := docxFilename(tt.title); got != tt.want {
			t.Errorf("docxFilename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
