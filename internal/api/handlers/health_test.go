package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeTool(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return path
}

func TestHealthz(t *testing.T) {
	h := NewHealthHandler("ffmpeg", "whisper-cli", &fakeWhisperLister{}, &fakeLLMLister{})

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func decodeReadyz(t *testing.T, rec *httptest.ResponseRecorder) (string, map[string]string) {
	t.Helper()
	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode readyz: %v", err)
	}
	return body.Status, body.Checks
}

func TestReadyzAllHealthy(t *testing.T) {
	h := NewHealthHandler(
		fakeTool(t, "ffmpeg"),
		fakeTool(t, "whisper-cli"),
		&fakeWhisperLister{models: []string{"base"}},
		&fakeLLMLister{models: []string{"llama3"}},
	)

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	status, checks := decodeReadyz(t, rec)
	if status != "ok" {
		t.Errorf("status = %q, want ok", status)
	}
	for name, v := range checks {
		if v != "ok" {
			t.Errorf("check %s = %q, want ok", name, v)
		}
	}
}

func TestReadyzDegraded(t *testing.T) {
	tests := []struct {
		name      string
		handler   *HealthHandler
		wantCheck string
	}{
		{
			name: "missing whisper binary",
			handler: NewHealthHandler(
				fakeTool(t, "ffmpeg"),
				"/nonexistent/whisper-cli",
				&fakeWhisperLister{models: []string{"base"}},
				&fakeLLMLister{models: []string{"m"}},
			),
			wantCheck: "whisper",
		},
		{
			name: "no models downloaded",
			handler: NewHealthHandler(
				fakeTool(t, "ffmpeg"),
				fakeTool(t, "whisper-cli"),
				&fakeWhisperLister{models: nil},
				&fakeLLMLister{models: []string{"m"}},
			),
			wantCheck: "whisper_models",
		},
		{
			name: "llm server down",
			handler: NewHealthHandler(
				fakeTool(t, "ffmpeg"),
				fakeTool(t, "whisper-cli"),
				&fakeWhisperLister{models: []string{"base"}},
				&fakeLLMLister{err: errors.New("connection refused")},
			),
			wantCheck: "llm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != http.StatusServiceUnavailable {
				t.Errorf("status = %d, want 503", rec.Code)
			}
			status, checks := decodeReadyz(t, rec)
			if status != "unhealthy" {
				t.Errorf("status = %q, want unhealthy", status)
			}
			if !strings.HasPrefix(checks[tt.wantCheck], "unhealthy") {
				t.Errorf("check %s = %q, want unhealthy", tt.wantCheck, checks[tt.wantCheck])
			}
		})
	}
}
